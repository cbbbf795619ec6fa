package repository

import (
	"context"
	"fmt"

	"github.com/swipefile/swipe-library/internal/models"
)

// AddLoginEvent appends a sign-in record for the user.
func (s *Storage) AddLoginEvent(ctx context.Context, userID string) error {
	const op = "storage.AddLoginEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO user_logins (user_id) VALUES ($1)`, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AddContentAccess appends a record of the user opening an offer.
func (s *Storage) AddContentAccess(ctx context.Context, userID, contentID string) error {
	const op = "storage.AddContentAccess"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO content_access (user_id, content_id) VALUES ($1, $2)`, userID, contentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUserLoginStats returns one row per user that has ever logged in, the
// most recent login first, joined with the account's subscription fields.
func (s *Storage) ListUserLoginStats(ctx context.Context) ([]*models.UserLoginStat, error) {
	const op = "storage.ListUserLoginStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.name, u.email, MAX(l.logged_in_at), u.expires_at, u.paused
			  FROM user_logins l
			  JOIN users u ON u.id = l.user_id
			  GROUP BY u.id, u.name, u.email, u.expires_at, u.paused
			  ORDER BY MAX(l.logged_in_at) DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.UserLoginStat
	for rows.Next() {
		stat := &models.UserLoginStat{}
		if err := rows.Scan(&stat.UserID, &stat.Name, &stat.Email,
			&stat.LastLogin, &stat.ExpiresAt, &stat.Paused); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListContentAccessStats returns one row per offer that has ever been opened,
// the most frequently opened first.
func (s *Storage) ListContentAccessStats(ctx context.Context) ([]*models.ContentAccessStat, error) {
	const op = "storage.ListContentAccessStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT o.id, o.title, o.thumbnail, COUNT(*), MAX(a.accessed_at)
			  FROM content_access a
			  JOIN contents o ON o.id = a.content_id
			  GROUP BY o.id, o.title, o.thumbnail
			  ORDER BY COUNT(*) DESC, MAX(a.accessed_at) DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.ContentAccessStat
	for rows.Next() {
		stat := &models.ContentAccessStat{}
		if err := rows.Scan(&stat.ContentID, &stat.Title, &stat.Thumbnail,
			&stat.AccessCount, &stat.LastAccessed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
