// Package list implements the creative listing endpoint with server-side
// filtering.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

// Handler serves GET /creatives.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	ListCreatives(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List creatives
// @Description Returns creatives newest first with their linked offer embedded. Search matches the creative title or the linked offer title.
// @Tags Creatives
// @Produce json
// @Security BearerAuth
// @Param nicho query string false "Filter by nicho"
// @Param trafego query string false "Filter by trafego"
// @Param idioma query string false "Filter by idioma"
// @Param oferta_id query string false "Filter by linked offer"
// @Param search query string false "Title substring, case-insensitive"
// @Success 200 {object} map[string]any "Creative list"
// @Failure 400 {object} response.ErrorResponse "Malformed oferta_id filter"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /creatives [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creatives.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	if v := q.Get("oferta_id"); v != "" && uuid.Validate(v) != nil {
		log.Info("rejected non-uuid oferta_id filter", "oferta_id", v)
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("oferta_id must be a valid uuid"))
		return
	}
	filter := models.CreativeFilter{
		Nicho:   q.Get("nicho"),
		Trafego: q.Get("trafego"),
		Idioma:  q.Get("idioma"),
		OfferID: q.Get("oferta_id"),
		Search:  q.Get("search"),
	}

	result, err := h.service.ListCreatives(r.Context(), filter)
	if err != nil {
		log.Error("failed to list creatives", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list creatives"))
		return
	}

	log.Info("creatives listed", "count", len(result))
	render.JSON(w, r, response.StatusOKWithData(result))
}
