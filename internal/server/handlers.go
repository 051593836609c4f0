package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sells-group/lead-scout/internal/discovery"
	"github.com/sells-group/lead-scout/internal/model"
	"github.com/sells-group/lead-scout/internal/store"
)

const (
	msgQueryRequired   = "Query required"
	msgCompanyNotFound = "Company not found"
	msgSearchComplete  = "Deep discovery & scraping complete"
)

type searchRequest struct {
	Query      string `json:"query" validate:"required"`
	NumResults int    `json:"num_results" validate:"gte=0,lte=50"`
}

type searchResponse struct {
	Message    string   `json:"message"`
	RunID      string   `json:"run_id"`
	TotalFound int      `json:"total_found"`
	Scraped    []string `json:"scraped"`
}

type companiesResponse struct {
	Total     int                   `json:"total"`
	Companies []model.CompanyRecord `json:"companies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.List(r.Context())
	if err != nil {
		zap.L().Error("server: list companies", zap.Error(err))
		http.Error(w, "Failed to list companies", http.StatusInternalServerError)
		return
	}
	s.render(w, "index.html", map[string]any{
		"Companies": companies,
		"Total":     len(companies),
	})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		http.Error(w, msgCompanyNotFound, http.StatusNotFound)
		return
	}
	if rec == nil {
		return
	}
	s.render(w, "company.html", rec)
}

func (s *Server) handleAPICompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.List(r.Context())
	if err != nil {
		zap.L().Error("server: list companies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	for i := range companies {
		companies[i].RawContent = ""
	}
	writeJSON(w, http.StatusOK, companiesResponse{Total: len(companies), Companies: companies})
}

func (s *Server) handleAPICompany(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		writeError(w, http.StatusNotFound, msgCompanyNotFound)
		return
	}
	if rec == nil {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// lookup loads the company named in the URL. ok is false when it does not
// exist; a nil record with ok true means an error response was written.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*model.CompanyRecord, bool) {
	rec, err := s.store.Get(chi.URLParam(r, "name"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, false
	case err != nil:
		zap.L().Error("server: get company", zap.String("name", chi.URLParam(r, "name")), zap.Error(err))
		http.Error(w, "Failed to load company", http.StatusInternalServerError)
		return nil, true
	}
	return rec, true
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Query = strings.TrimSpace(req.Query)

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "NumResults" {
			writeError(w, http.StatusBadRequest, "num_results must be between 0 and 50")
			return
		}
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	if s.discovery == nil {
		writeError(w, http.StatusServiceUnavailable, "relevance model unavailable")
		return
	}

	log := zap.L().With(zap.String("request_id", middleware.GetReqID(r.Context())))
	log.Info("server: discovery requested", zap.String("query", req.Query), zap.Int("num_results", req.NumResults))

	sum, err := s.discovery.Run(r.Context(), discovery.Request{Query: req.Query, NumResults: req.NumResults})
	if err != nil {
		if errors.Is(err, discovery.ErrQueryRequired) {
			writeError(w, http.StatusBadRequest, msgQueryRequired)
			return
		}
		log.Error("server: discovery failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "discovery failed")
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Message:    msgSearchComplete,
		RunID:      sum.RunID,
		TotalFound: sum.TotalFound,
		Scraped:    sum.Scraped,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("server: render template", zap.String("template", name), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
