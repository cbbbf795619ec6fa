package swipelibrary

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/swipefile/swipe-library/internal/http/handlers/account/changepassword"
	accountget "github.com/swipefile/swipe-library/internal/http/handlers/account/get"
	accountupdate "github.com/swipefile/swipe-library/internal/http/handlers/account/update"
	"github.com/swipefile/swipe-library/internal/http/handlers/auth/login"
	"github.com/swipefile/swipe-library/internal/http/handlers/auth/setupconsume"
	"github.com/swipefile/swipe-library/internal/http/handlers/auth/setupvalidate"
	creativecreate "github.com/swipefile/swipe-library/internal/http/handlers/creatives/create"
	creativeget "github.com/swipefile/swipe-library/internal/http/handlers/creatives/get"
	creativelist "github.com/swipefile/swipe-library/internal/http/handlers/creatives/list"
	creativeremove "github.com/swipefile/swipe-library/internal/http/handlers/creatives/remove"
	creativeupdate "github.com/swipefile/swipe-library/internal/http/handlers/creatives/update"
	"github.com/swipefile/swipe-library/internal/http/handlers/health"
	landingcreate "github.com/swipefile/swipe-library/internal/http/handlers/landing/create"
	landinglist "github.com/swipefile/swipe-library/internal/http/handlers/landing/list"
	landingremove "github.com/swipefile/swipe-library/internal/http/handlers/landing/remove"
	landingupdate "github.com/swipefile/swipe-library/internal/http/handlers/landing/update"
	offercreate "github.com/swipefile/swipe-library/internal/http/handlers/offers/create"
	offerget "github.com/swipefile/swipe-library/internal/http/handlers/offers/get"
	offerlist "github.com/swipefile/swipe-library/internal/http/handlers/offers/list"
	offerremove "github.com/swipefile/swipe-library/internal/http/handlers/offers/remove"
	offerupdate "github.com/swipefile/swipe-library/internal/http/handlers/offers/update"
	"github.com/swipefile/swipe-library/internal/http/handlers/stats/dashboard"
	usercreate "github.com/swipefile/swipe-library/internal/http/handlers/users/create"
	userextend "github.com/swipefile/swipe-library/internal/http/handlers/users/extend"
	userget "github.com/swipefile/swipe-library/internal/http/handlers/users/get"
	userlist "github.com/swipefile/swipe-library/internal/http/handlers/users/list"
	userpause "github.com/swipefile/swipe-library/internal/http/handlers/users/pause"
	userremove "github.com/swipefile/swipe-library/internal/http/handlers/users/remove"
	userresend "github.com/swipefile/swipe-library/internal/http/handlers/users/resendsetup"
	userupdate "github.com/swipefile/swipe-library/internal/http/handlers/users/update"
	"github.com/swipefile/swipe-library/internal/http/middlewarectx"
	"github.com/swipefile/swipe-library/internal/lib/jwt"
	authservice "github.com/swipefile/swipe-library/internal/services/auth"
	catalogservice "github.com/swipefile/swipe-library/internal/services/catalog"
	statsservice "github.com/swipefile/swipe-library/internal/services/stats"
	userservice "github.com/swipefile/swipe-library/internal/services/user"
)

// Services bundles everything the routes need.
type Services struct {
	JWTMaker  jwt.Maker
	Accounts  middlewarectx.AccountProvider
	Readiness health.ReadinessChecker
	Auth      *authservice.Service
	Users     *userservice.Service
	Catalog   *catalogservice.Service
	Stats     *statsservice.Service
}

// RegisterRoutes mounts the whole HTTP surface on the router.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	authLimiter := rate.NewLimiter(1, 5)

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints, open but throttled.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, authLimiter))
			r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
			r.Get("/auth/setup", setupvalidate.New(logger, s.Auth).ServeHTTP)
			r.Post("/auth/setup", setupconsume.New(logger, s.Auth).ServeHTTP)
		})

		// Signed-in surface.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.JWTMaker, logger))

			r.Get("/account", accountget.New(logger, s.Users).ServeHTTP)
			r.Put("/account", accountupdate.New(logger, s.Users).ServeHTTP)
			r.Put("/account/password", changepassword.New(logger, s.Auth).ServeHTTP)

			// Library reads, members gated on an active subscription.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionGateMiddleware(s.Accounts, logger))
				r.Get("/offers", offerlist.New(logger, s.Catalog).ServeHTTP)
				r.Get("/offers/{id}", offerget.New(logger, s.Catalog, s.Stats).ServeHTTP)
				r.Get("/creatives", creativelist.New(logger, s.Catalog).ServeHTTP)
				r.Get("/creatives/{id}", creativeget.New(logger, s.Catalog).ServeHTTP)
				r.Get("/landing-pages", landinglist.New(logger, s.Catalog).ServeHTTP)
			})

			// Admin surface.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Post("/users", usercreate.New(logger, s.Users).ServeHTTP)
				r.Get("/users", userlist.New(logger, s.Users).ServeHTTP)
				r.Get("/users/{id}", userget.New(logger, s.Users).ServeHTTP)
				r.Put("/users/{id}", userupdate.New(logger, s.Users).ServeHTTP)
				r.Delete("/users/{id}", userremove.New(logger, s.Users).ServeHTTP)
				r.Post("/users/{id}/pause", userpause.New(logger, s.Users).ServeHTTP)
				r.Post("/users/{id}/extend", userextend.New(logger, s.Users).ServeHTTP)
				r.Post("/users/{id}/resend-setup", userresend.New(logger, s.Users).ServeHTTP)

				r.Post("/offers", offercreate.New(logger, s.Catalog).ServeHTTP)
				r.Put("/offers/{id}", offerupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/offers/{id}", offerremove.New(logger, s.Catalog).ServeHTTP)

				r.Post("/creatives", creativecreate.New(logger, s.Catalog).ServeHTTP)
				r.Put("/creatives/{id}", creativeupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/creatives/{id}", creativeremove.New(logger, s.Catalog).ServeHTTP)

				r.Post("/landing-pages", landingcreate.New(logger, s.Catalog).ServeHTTP)
				r.Put("/landing-pages/{id}", landingupdate.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/landing-pages/{id}", landingremove.New(logger, s.Catalog).ServeHTTP)

				r.Get("/stats/dashboard", dashboard.New(logger, s.Stats).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger, s.Readiness).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
}
