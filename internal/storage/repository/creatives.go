package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swipefile/swipe-library/internal/models"
)

const creativeColumns = `c.id, c.title, c.drive_link,
			      COALESCE(c.nicho, ''), COALESCE(c.trafego, ''), COALESCE(c.idioma, ''),
			      c.oferta_id, c.created_at,
			      o.id, o.title, o.thumbnail,
			      COALESCE(o.tipo, ''), COALESCE(o.idioma, ''), COALESCE(o.nicho, ''), COALESCE(o.trafego, '')`

func scanCreative(row interface{ Scan(...any) error }) (*models.Creative, error) {
	c := &models.Creative{}
	var offerID, oID, oTitle, oThumbnail sql.NullString
	var oTipo, oIdioma, oNicho, oTrafego sql.NullString
	if err := row.Scan(&c.ID, &c.Title, &c.DriveLink,
		&c.Nicho, &c.Trafego, &c.Idioma,
		&offerID, &c.CreatedAt,
		&oID, &oTitle, &oThumbnail,
		&oTipo, &oIdioma, &oNicho, &oTrafego); err != nil {
		return nil, err
	}
	if offerID.Valid {
		c.OfferID = &offerID.String
	}
	if oID.Valid {
		c.Offer = &models.Offer{
			ID:        oID.String,
			Title:     oTitle.String,
			Thumbnail: oThumbnail.String,
			Tipo:      oTipo.String,
			Idioma:    oIdioma.String,
			Nicho:     oNicho.String,
			Trafego:   oTrafego.String,
		}
	}
	return c, nil
}

// CreateCreative stores a new creative and returns its id.
func (s *Storage) CreateCreative(ctx context.Context, creative models.Creative) (string, error) {
	const op = "storage.CreateCreative"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO criativos (title, drive_link, nicho, trafego, idioma, oferta_id)
			  VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		creative.Title, creative.DriveLink,
		creative.Nicho, creative.Trafego, creative.Idioma,
		creative.OfferID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCreatives returns creatives newest first with their linked offer
// embedded. The search term matches the creative title or the linked offer
// title.
func (s *Storage) ListCreatives(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error) {
	const op = "storage.ListCreatives"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + creativeColumns + `
			  FROM criativos c
			  LEFT JOIN contents o ON o.id = c.oferta_id
			  WHERE ($1 = '' OR c.nicho = $1)
			    AND ($2 = '' OR c.trafego = $2)
			    AND ($3 = '' OR c.idioma = $3)
			    AND ($4 = '' OR c.oferta_id = $4::uuid)
			    AND ($5 = '' OR c.title ILIKE '%' || $5 || '%' OR o.title ILIKE '%' || $5 || '%')
			  ORDER BY c.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Nicho, filter.Trafego, filter.Idioma, filter.OfferID, filter.Search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Creative
	for rows.Next() {
		c, err := scanCreative(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCreative returns a creative by id with its linked offer embedded.
func (s *Storage) GetCreative(ctx context.Context, id string) (*models.Creative, error) {
	const op = "storage.GetCreative"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + creativeColumns + `
			  FROM criativos c
			  LEFT JOIN contents o ON o.id = c.oferta_id
			  WHERE c.id = $1`
	c, err := scanCreative(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCreative rewrites a creative row and returns the number of affected
// rows.
func (s *Storage) UpdateCreative(ctx context.Context, creative models.Creative) (int64, error) {
	const op = "storage.UpdateCreative"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE criativos
			  SET title = $2, drive_link = $3,
			      nicho = NULLIF($4, ''), trafego = NULLIF($5, ''), idioma = NULLIF($6, ''),
			      oferta_id = $7
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query,
		creative.ID, creative.Title, creative.DriveLink,
		creative.Nicho, creative.Trafego, creative.Idioma,
		creative.OfferID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteCreative removes a creative and returns the number of deleted rows.
func (s *Storage) DeleteCreative(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteCreative"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM criativos WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
