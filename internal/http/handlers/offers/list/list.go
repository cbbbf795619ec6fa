// Package list implements the offer listing endpoint with server-side
// filtering.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

// Handler serves GET /offers.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	ListOffers(ctx context.Context, filter models.OfferFilter) ([]*models.Offer, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List offers
// @Description Returns offers newest first. Classification query parameters filter exactly, search matches the title.
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Filter by tipo"
// @Param estrutura query string false "Filter by estrutura"
// @Param idioma query string false "Filter by idioma"
// @Param nicho query string false "Filter by nicho"
// @Param trafego query string false "Filter by trafego"
// @Param search query string false "Title substring, case-insensitive"
// @Success 200 {object} map[string]any "Offer list"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /offers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.OfferFilter{
		Tipo:      q.Get("tipo"),
		Estrutura: q.Get("estrutura"),
		Idioma:    q.Get("idioma"),
		Nicho:     q.Get("nicho"),
		Trafego:   q.Get("trafego"),
		Search:    q.Get("search"),
	}

	result, err := h.service.ListOffers(r.Context(), filter)
	if err != nil {
		log.Error("failed to list offers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list offers"))
		return
	}

	log.Info("offers listed", "count", len(result))
	render.JSON(w, r, response.StatusOKWithData(result))
}
