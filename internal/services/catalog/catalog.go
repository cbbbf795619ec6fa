// Package catalog implements the curated library: offers, creatives and
// landing pages, including their thumbnail blobs and read caching.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

const cacheTTL = time.Hour

// ErrThumbnailRequired is returned when an offer is created without a
// thumbnail image.
var ErrThumbnailRequired = errors.New("thumbnail is required")

// Repository is the storage surface for the three library entities.
type Repository interface {
	CreateOffer(ctx context.Context, offer models.Offer) (string, error)
	ListOffers(ctx context.Context, filter models.OfferFilter) ([]*models.Offer, error)
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	UpdateOffer(ctx context.Context, offer models.Offer) (int64, error)
	DeleteOffer(ctx context.Context, id string) (int64, error)

	CreateCreative(ctx context.Context, creative models.Creative) (string, error)
	ListCreatives(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error)
	GetCreative(ctx context.Context, id string) (*models.Creative, error)
	UpdateCreative(ctx context.Context, creative models.Creative) (int64, error)
	DeleteCreative(ctx context.Context, id string) (int64, error)

	CreateLandingPage(ctx context.Context, page models.LandingPage) (string, error)
	ListLandingPages(ctx context.Context) ([]*models.LandingPage, error)
	GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error)
	UpdateLandingPage(ctx context.Context, page models.LandingPage) (int64, error)
	DeleteLandingPage(ctx context.Context, id string) (int64, error)
}

// BlobStore holds thumbnail images.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// Cache describes the read cache for single-entity lookups.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Thumbnail is an uploaded image attached to an offer or a creative.
type Thumbnail struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Service implements the library flows.
type Service struct {
	repo  Repository
	blobs BlobStore
	cache Cache
	log   *slog.Logger
}

// New creates a catalog Service.
func New(repo Repository, blobs BlobStore, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		cache: cache,
		log:   log,
	}
}

// uploadThumbnail stores the image under a random key and returns its public
// URL.
func (s *Service) uploadThumbnail(ctx context.Context, thumb *Thumbnail) (string, error) {
	ext := filepath.Ext(thumb.Filename)
	if ext == "" {
		if exts, err := mime.ExtensionsByType(thumb.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	key := uuid.NewString() + ext
	return s.blobs.Upload(ctx, key, thumb.Data, thumb.ContentType)
}

// releaseThumbnail deletes the blob behind a thumbnail URL. A failed delete
// only leaks the blob, so it is logged and swallowed.
func (s *Service) releaseThumbnail(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.blobs.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete thumbnail blob", "key", key, sl.Err(err))
	}
}

// CreateOffer stores a new offer. The thumbnail is mandatory and is uploaded
// before the row write.
func (s *Service) CreateOffer(ctx context.Context, in models.OfferInput, thumb *Thumbnail) (*models.Offer, error) {
	if thumb == nil {
		return nil, ErrThumbnailRequired
	}
	offer := models.Offer{
		Title:     in.Title,
		DriveLink: in.DriveLink,
		Tipo:      in.Tipo,
		Estrutura: in.Estrutura,
		Idioma:    in.Idioma,
		Nicho:     in.Nicho,
		Trafego:   in.Trafego,
	}
	url, err := s.uploadThumbnail(ctx, thumb)
	if err != nil {
		return nil, err
	}
	offer.Thumbnail = url

	id, err := s.repo.CreateOffer(ctx, offer)
	if err != nil {
		// The row never landed, the fresh blob is orphaned.
		s.releaseThumbnail(ctx, offer.Thumbnail)
		return nil, err
	}
	offer.ID = id
	s.log.Info("offer created", "offer_id", id)
	return &offer, nil
}

// ListOffers returns offers matching the filter.
func (s *Service) ListOffers(ctx context.Context, filter models.OfferFilter) ([]*models.Offer, error) {
	return s.repo.ListOffers(ctx, filter)
}

// GetOffer returns one offer, serving repeated reads from the cache.
func (s *Service) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	cacheKey := fmt.Sprintf("offer:%s", id)
	var cached *models.Offer
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", cacheKey, sl.Err(err))
	}
	if found {
		return cached, nil
	}

	offer, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, offer, cacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", cacheKey, sl.Err(err))
	}
	return offer, nil
}

// UpdateOffer edits an offer. When a new thumbnail is supplied the old blob
// is deleted only after the row update succeeds; if that delete fails the old
// blob is leaked, never the row left pointing at a missing image.
func (s *Service) UpdateOffer(ctx context.Context, id string, in models.OfferInput, thumb *Thumbnail) (int64, error) {
	existing, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return 0, err
	}

	offer := models.Offer{
		ID:        id,
		Title:     in.Title,
		Thumbnail: existing.Thumbnail,
		DriveLink: in.DriveLink,
		Tipo:      in.Tipo,
		Estrutura: in.Estrutura,
		Idioma:    in.Idioma,
		Nicho:     in.Nicho,
		Trafego:   in.Trafego,
	}
	if thumb != nil {
		url, err := s.uploadThumbnail(ctx, thumb)
		if err != nil {
			return 0, err
		}
		offer.Thumbnail = url
	}

	count, err := s.repo.UpdateOffer(ctx, offer)
	if err != nil {
		if thumb != nil {
			s.releaseThumbnail(ctx, offer.Thumbnail)
		}
		return 0, err
	}
	if thumb != nil && existing.Thumbnail != "" {
		s.releaseThumbnail(ctx, existing.Thumbnail)
	}
	s.invalidate(fmt.Sprintf("offer:%s", id))
	return count, nil
}

// DeleteOffer removes an offer and releases its thumbnail blob.
func (s *Service) DeleteOffer(ctx context.Context, id string) (int64, error) {
	existing, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.DeleteOffer(ctx, id)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.releaseThumbnail(ctx, existing.Thumbnail)
	}
	s.invalidate(fmt.Sprintf("offer:%s", id))
	s.log.Info("offer deleted", "offer_id", id)
	return count, nil
}

// CreateCreative stores a new creative. Creatives carry no blob of their
// own; their preview comes from the drive link or the linked offer.
func (s *Service) CreateCreative(ctx context.Context, in models.CreativeInput) (*models.Creative, error) {
	creative := models.Creative{
		Title:     in.Title,
		DriveLink: in.DriveLink,
		Nicho:     in.Nicho,
		Trafego:   in.Trafego,
		Idioma:    in.Idioma,
	}
	if in.OfferID != "" {
		offerID := in.OfferID
		creative.OfferID = &offerID
	}

	id, err := s.repo.CreateCreative(ctx, creative)
	if err != nil {
		return nil, err
	}
	creative.ID = id
	s.log.Info("creative created", "creative_id", id)
	return &creative, nil
}

// ListCreatives returns creatives matching the filter.
func (s *Service) ListCreatives(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error) {
	return s.repo.ListCreatives(ctx, filter)
}

// GetCreative returns one creative, serving repeated reads from the cache.
func (s *Service) GetCreative(ctx context.Context, id string) (*models.Creative, error) {
	cacheKey := fmt.Sprintf("creative:%s", id)
	var cached *models.Creative
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", cacheKey, sl.Err(err))
	}
	if found {
		return cached, nil
	}

	creative, err := s.repo.GetCreative(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, creative, cacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", cacheKey, sl.Err(err))
	}
	return creative, nil
}

// UpdateCreative edits a creative. An empty OfferID in the input clears the
// association.
func (s *Service) UpdateCreative(ctx context.Context, id string, in models.CreativeInput) (int64, error) {
	creative := models.Creative{
		ID:        id,
		Title:     in.Title,
		DriveLink: in.DriveLink,
		Nicho:     in.Nicho,
		Trafego:   in.Trafego,
		Idioma:    in.Idioma,
	}
	if in.OfferID != "" {
		offerID := in.OfferID
		creative.OfferID = &offerID
	}

	count, err := s.repo.UpdateCreative(ctx, creative)
	if err != nil {
		return 0, err
	}
	s.invalidate(fmt.Sprintf("creative:%s", id))
	return count, nil
}

// DeleteCreative removes a creative.
func (s *Service) DeleteCreative(ctx context.Context, id string) (int64, error) {
	count, err := s.repo.DeleteCreative(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(fmt.Sprintf("creative:%s", id))
	s.log.Info("creative deleted", "creative_id", id)
	return count, nil
}

// CreateLandingPage stores a new landing page after validating its
// association.
func (s *Service) CreateLandingPage(ctx context.Context, in models.LandingPageInput) (*models.LandingPage, error) {
	assoc, err := in.Association()
	if err != nil {
		return nil, err
	}
	page := models.LandingPage{
		Title:       in.Title,
		PageURL:     in.PageURL,
		Association: assoc,
	}
	id, err := s.repo.CreateLandingPage(ctx, page)
	if err != nil {
		return nil, err
	}
	page.ID = id
	s.log.Info("landing page created", "landing_page_id", id)
	return &page, nil
}

// ListLandingPages returns all landing pages with associated titles joined.
func (s *Service) ListLandingPages(ctx context.Context) ([]*models.LandingPage, error) {
	return s.repo.ListLandingPages(ctx)
}

// GetLandingPage returns one landing page.
func (s *Service) GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error) {
	return s.repo.GetLandingPage(ctx, id)
}

// UpdateLandingPage edits a landing page after validating its association.
func (s *Service) UpdateLandingPage(ctx context.Context, id string, in models.LandingPageInput) (int64, error) {
	assoc, err := in.Association()
	if err != nil {
		return 0, err
	}
	page := models.LandingPage{
		ID:          id,
		Title:       in.Title,
		PageURL:     in.PageURL,
		Association: assoc,
	}
	return s.repo.UpdateLandingPage(ctx, page)
}

// DeleteLandingPage removes a landing page.
func (s *Service) DeleteLandingPage(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteLandingPage(ctx, id)
}

func (s *Service) invalidate(key string) {
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("cache invalidation failed", "key", key, sl.Err(err))
	}
}
