package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает chi-роутер со всеми маршрутами сайта.
func NewRouter(
	listingsHandler *ListingsHandler,
	formsHandler *FormsHandler,
	allowedOrigins []string,
	baseLogger port.LoggerPort,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", listingsHandler.FilterListings)
		r.Get("/listings/{slug}", listingsHandler.GetListing)
		r.Get("/filters/options", listingsHandler.GetFilterOptions)

		r.Post("/contact", formsHandler.SubmitContact)
		r.Post("/feedback", formsHandler.SubmitFeedback)
	})

	return r
}

func NewServer(port string, handler http.Handler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}

// Health обрабатывает GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
