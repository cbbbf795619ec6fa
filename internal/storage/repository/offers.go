package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swipefile/swipe-library/internal/models"
)

const offerColumns = `id, title, thumbnail, drive_link,
			      COALESCE(tipo, ''), COALESCE(estrutura, ''), COALESCE(idioma, ''),
			      COALESCE(nicho, ''), COALESCE(trafego, ''), created_at`

func scanOffer(row interface{ Scan(...any) error }) (*models.Offer, error) {
	o := &models.Offer{}
	if err := row.Scan(&o.ID, &o.Title, &o.Thumbnail, &o.DriveLink,
		&o.Tipo, &o.Estrutura, &o.Idioma, &o.Nicho, &o.Trafego, &o.CreatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateOffer stores a new offer and returns its id.
func (s *Storage) CreateOffer(ctx context.Context, offer models.Offer) (string, error) {
	const op = "storage.CreateOffer"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO contents (title, thumbnail, drive_link, tipo, estrutura, idioma, nicho, trafego)
			  VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		offer.Title, offer.Thumbnail, offer.DriveLink,
		offer.Tipo, offer.Estrutura, offer.Idioma, offer.Nicho, offer.Trafego).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListOffers returns offers newest first, narrowed by the filter:
// classification fields match exactly, the search term is a case-insensitive
// substring of the title, all conditions ANDed.
func (s *Storage) ListOffers(ctx context.Context, filter models.OfferFilter) ([]*models.Offer, error) {
	const op = "storage.ListOffers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + offerColumns + `
			  FROM contents
			  WHERE ($1 = '' OR tipo = $1)
			    AND ($2 = '' OR estrutura = $2)
			    AND ($3 = '' OR idioma = $3)
			    AND ($4 = '' OR nicho = $4)
			    AND ($5 = '' OR trafego = $5)
			    AND ($6 = '' OR title ILIKE '%' || $6 || '%')
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Tipo, filter.Estrutura, filter.Idioma, filter.Nicho, filter.Trafego, filter.Search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetOffer returns an offer by id.
func (s *Storage) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	const op = "storage.GetOffer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + offerColumns + ` FROM contents WHERE id = $1`
	o, err := scanOffer(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// UpdateOffer rewrites an offer row and returns the number of affected rows.
func (s *Storage) UpdateOffer(ctx context.Context, offer models.Offer) (int64, error) {
	const op = "storage.UpdateOffer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contents
			  SET title = $2, thumbnail = $3, drive_link = $4,
			      tipo = NULLIF($5, ''), estrutura = NULLIF($6, ''), idioma = NULLIF($7, ''),
			      nicho = NULLIF($8, ''), trafego = NULLIF($9, '')
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query,
		offer.ID, offer.Title, offer.Thumbnail, offer.DriveLink,
		offer.Tipo, offer.Estrutura, offer.Idioma, offer.Nicho, offer.Trafego)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteOffer removes an offer and returns the number of deleted rows.
// Creatives pointing at it keep their row with the association nulled by the
// schema.
func (s *Storage) DeleteOffer(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteOffer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
