package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swipefile/swipe-library/internal/models"
)

const landingPageColumns = `lp.id, lp.title, lp.page_url,
			      COALESCE(lp.association_type, ''), lp.oferta_id, lp.criativo_id, lp.created_at,
			      COALESCE(o.title, ''), COALESCE(c.title, '')`

func scanLandingPage(row interface{ Scan(...any) error }) (*models.LandingPage, error) {
	lp := &models.LandingPage{}
	var kind string
	var offerID, creativeID sql.NullString
	if err := row.Scan(&lp.ID, &lp.Title, &lp.PageURL,
		&kind, &offerID, &creativeID, &lp.CreatedAt,
		&lp.OfferTitle, &lp.CreativeTitle); err != nil {
		return nil, err
	}
	var offerPtr, creativePtr *string
	if offerID.Valid {
		offerPtr = &offerID.String
	}
	if creativeID.Valid {
		creativePtr = &creativeID.String
	}
	assoc, err := models.ParseAssociation(models.AssociationKind(kind), offerPtr, creativePtr)
	if err != nil {
		return nil, err
	}
	lp.Association = assoc
	return lp, nil
}

// CreateLandingPage stores a new landing page and returns its id.
func (s *Storage) CreateLandingPage(ctx context.Context, page models.LandingPage) (string, error) {
	const op = "storage.CreateLandingPage"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	kind, offerID, creativeID := page.Association.Columns()
	var newID string
	query := `INSERT INTO landing_pages (title, page_url, association_type, oferta_id, criativo_id)
			  VALUES ($1, $2, NULLIF($3, ''), $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		page.Title, page.PageURL, string(kind), offerID, creativeID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListLandingPages returns landing pages newest first with the titles of their
// associated entities joined in.
func (s *Storage) ListLandingPages(ctx context.Context) ([]*models.LandingPage, error) {
	const op = "storage.ListLandingPages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + landingPageColumns + `
			  FROM landing_pages lp
			  LEFT JOIN contents o ON o.id = lp.oferta_id
			  LEFT JOIN criativos c ON c.id = lp.criativo_id
			  ORDER BY lp.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.LandingPage
	for rows.Next() {
		lp, err := scanLandingPage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, lp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetLandingPage returns a landing page by id.
func (s *Storage) GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error) {
	const op = "storage.GetLandingPage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + landingPageColumns + `
			  FROM landing_pages lp
			  LEFT JOIN contents o ON o.id = lp.oferta_id
			  LEFT JOIN criativos c ON c.id = lp.criativo_id
			  WHERE lp.id = $1`
	lp, err := scanLandingPage(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lp, nil
}

// UpdateLandingPage rewrites a landing page row and returns the number of
// affected rows.
func (s *Storage) UpdateLandingPage(ctx context.Context, page models.LandingPage) (int64, error) {
	const op = "storage.UpdateLandingPage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	kind, offerID, creativeID := page.Association.Columns()
	query := `UPDATE landing_pages
			  SET title = $2, page_url = $3, association_type = NULLIF($4, ''),
			      oferta_id = $5, criativo_id = $6
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query,
		page.ID, page.Title, page.PageURL, string(kind), offerID, creativeID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteLandingPage removes a landing page and returns the number of deleted
// rows.
func (s *Storage) DeleteLandingPage(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteLandingPage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM landing_pages WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
