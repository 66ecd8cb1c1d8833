package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"microblog/internal/handler"
	"microblog/internal/httputil"
	"microblog/internal/service"
	authmw "microblog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	UserHandler   *handler.UserHandler
	FollowHandler *handler.FollowHandler
	TweetHandler  *handler.TweetHandler
	MediaHandler  *handler.MediaHandler
	UserService   *service.UserService
	Writer        *httputil.Writer
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		cfg.Writer.JSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Signup needs no identity; everything else resolves the api-key header,
	// falling back to the test user rather than rejecting.
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", cfg.UserHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(authmw.ResolveAPIKey(cfg.UserService, cfg.Writer))

			r.Get("/users/me", cfg.UserHandler.Me)
			r.Get("/users/{id}", cfg.UserHandler.GetByID)
			r.Post("/users/{id}/follow", cfg.FollowHandler.Follow)
			r.Delete("/users/{id}/follow", cfg.FollowHandler.Unfollow)

			r.Get("/tweets", cfg.TweetHandler.List)
			r.Post("/tweets", cfg.TweetHandler.Create)
			r.Delete("/tweets/{id}", cfg.TweetHandler.Delete)
			r.Post("/tweets/{id}/likes", cfg.TweetHandler.Like)
			r.Delete("/tweets/{id}/likes", cfg.TweetHandler.Unlike)

			r.Post("/medias", cfg.MediaHandler.Upload)
		})
	})

	return r
}
