package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swipefile/swipe-library/internal/models"
)

const userColumns = `id, name, email, phone, role, COALESCE(password_hash, ''),
			      expires_at, previous_expires_at, paused,
			      COALESCE(password_setup_token, ''), password_setup_expires, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var expiresAt, previousExpiresAt, setupExpires sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
		&expiresAt, &previousExpiresAt, &u.Paused,
		&u.SetupToken, &setupExpires, &u.CreatedAt); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		u.ExpiresAt = &expiresAt.Time
	}
	if previousExpiresAt.Valid {
		u.PreviousExpiresAt = &previousExpiresAt.Time
	}
	if setupExpires.Valid {
		u.SetupExpires = &setupExpires.Time
	}
	return u, nil
}

// CreateUser stores a new account and returns its id.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (name, email, phone, role, expires_at, paused,
			      password_setup_token, password_setup_expires)
			  VALUES ($1, lower($2), $3, $4, $5, $6, NULLIF($7, ''), $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Role, user.ExpiresAt, user.Paused,
		user.SetupToken, user.SetupExpires).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListUsers returns every account, newest first.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetUser returns an account by id.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail returns an account by its lower-cased email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserBySetupToken returns the account holding the given setup token under
// the given email. Both must match; a token alone is not enough to reach an
// unrelated account.
func (s *Storage) GetUserBySetupToken(ctx context.Context, token, email string) (*models.User, error) {
	const op = "storage.GetUserBySetupToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE password_setup_token = $1 AND email = lower($2)`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserProfile updates the administrator-editable account fields and
// returns the number of affected rows.
func (s *Storage) UpdateUserProfile(ctx context.Context, id, name, email, phone string) (int64, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $2, email = lower($3), phone = $4
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id, name, email, phone)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UpdateSubscription writes the subscription window fields as one unit, so a
// pause, resume or extension lands atomically.
func (s *Storage) UpdateSubscription(ctx context.Context, id string, expiresAt, previousExpiresAt *time.Time, paused bool) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET expires_at = $2, previous_expires_at = $3, paused = $4
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id, expiresAt, previousExpiresAt, paused)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ReplaceSetupToken installs a new setup token and expiry in a single
// statement and reports whether a previous token was discarded by the
// overwrite.
func (s *Storage) ReplaceSetupToken(ctx context.Context, id, token string, expires time.Time) (bool, error) {
	const op = "storage.ReplaceSetupToken"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users u
			  SET password_setup_token = $2, password_setup_expires = $3
			  FROM (SELECT id, password_setup_token AS old_token
			        FROM users WHERE id = $1 FOR UPDATE) prev
			  WHERE u.id = prev.id
			  RETURNING prev.old_token IS NOT NULL`
	var discarded bool
	err := s.DB.QueryRowContext(ctx, query, id, token, expires).Scan(&discarded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return discarded, nil
}

// SetPasswordHash stores the credential for the given email.
func (s *Storage) SetPasswordHash(ctx context.Context, email, hash string) error {
	const op = "storage.SetPasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $2 WHERE email = lower($1)`
	res, err := s.DB.ExecContext(ctx, query, email, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ClearSetupToken nulls both setup fields for the row holding the token, so
// the link cannot be replayed. Returns the number of cleared rows.
func (s *Storage) ClearSetupToken(ctx context.Context, token string) (int64, error) {
	const op = "storage.ClearSetupToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_setup_token = NULL, password_setup_expires = NULL
			  WHERE password_setup_token = $1`
	res, err := s.DB.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteUser removes an account for good and returns the number of deleted
// rows. The login and access events cascade away with it.
func (s *Storage) DeleteUser(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
