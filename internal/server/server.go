// Package server exposes the processed reports as a small web UI and JSON
// API, and starts discovery runs on request.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/discovery"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Discoverer runs a discovery pipeline.
type Discoverer interface {
	Run(ctx context.Context, req discovery.Request) (*discovery.Summary, error)
}

// Server holds the handler dependencies.
type Server struct {
	store     store.Store
	discovery Discoverer
	pages     *template.Template
	validate  *validator.Validate
}

// New creates a Server. d may be nil when the relevance model could not be
// initialized; POST /search then answers 503 while browsing still works.
func New(st store.Store, d Discoverer) (*Server, error) {
	pages, err := template.New("pages").Funcs(template.FuncMap{
		"roles": model.AllRoles,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, eris.Wrap(err, "server: parse templates")
	}
	return &Server{
		store:     st,
		discovery: d,
		pages:     pages,
		validate:  validator.New(),
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/company/{name}", s.handleCompany)
	r.Post("/search", s.handleSearch)

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies", s.handleAPICompanies)
		r.Get("/companies/{name}", s.handleAPICompany)
	})

	return r
}

// requestLogger logs one line per request with zap.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			zap.L().Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
