package vision

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes industry analytics HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/industries/{industry_id}", func(r chi.Router) {
		r.Get("/vision", h.report)      // GET /api/v1/industries/{id}/vision
		r.Get("/dashboard", h.overview) // GET /api/v1/industries/{id}/dashboard?days=&retailer=
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context(), chi.URLParam(r, "industry_id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, report)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	q := OverviewQuery{
		IndustryID:   chi.URLParam(r, "industry_id"),
		RetailerName: r.URL.Query().Get("retailer"),
	}
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			respond(w, http.StatusBadRequest, map[string]string{"error": "days must be a non-negative integer"})
			return
		}
		q.Days = n
	}
	overview, err := h.service.Overview(r.Context(), q)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, overview)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
