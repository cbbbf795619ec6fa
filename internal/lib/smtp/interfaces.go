// Package smtp provides the SMTP transport used to deliver account emails.
package smtp

import "io"

// Client is the minimal SMTP client surface the sender needs.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstracts connection setup so senders can be tested with
// a fake client.
type TransportInterface interface {
	Connect() (Client, error)
	From() string
}
