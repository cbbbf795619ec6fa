// Package mailer delivers account emails over SMTP.
package mailer

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/swipefile/swipe-library/internal/config"
	smtplib "github.com/swipefile/swipe-library/internal/lib/smtp"
	"github.com/swipefile/swipe-library/internal/lib/sl"
)

// Service composes and sends the password setup email.
type Service struct {
	transport smtplib.TransportInterface
	link      config.SetupLink
	log       *slog.Logger
}

// New creates a mailer Service.
func New(transport smtplib.TransportInterface, link config.SetupLink, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		link:      link,
		log:       log,
	}
}

// SetupLink builds the login URL carrying the setup token and the recipient
// email.
func (s *Service) SetupLink(token, email string) string {
	return fmt.Sprintf("%s/login?setup=%s&email=%s",
		strings.TrimRight(s.link.BaseURL, "/"), token, url.QueryEscape(email))
}

// SendSetupEmail mails the password setup link to a freshly created or reset
// account.
func (s *Service) SendSetupEmail(name, email, token string) error {
	link := s.SetupLink(token, email)
	bodyText := fmt.Sprintf(`Hello, %s!

An account has been created for you. To choose your password and sign in,
open the link below. The link is valid for 7 days.

%s

If you did not expect this email, you can ignore it.`, name, link)

	return s.sendEmail([]string{email}, s.link.Subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.From(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.From()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.From(), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP session", sl.Err(err))
		return err
	}

	s.log.Info("email sent", "to", to)
	return nil
}
