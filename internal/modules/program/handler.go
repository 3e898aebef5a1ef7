package program

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes program HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/programs", func(r chi.Router) {
		r.Post("/", h.launch)                                        // POST   /api/v1/programs
		r.Get("/{id}", h.get)                                        // GET    /api/v1/programs/{id}
		r.Delete("/{id}", h.remove)                                  // DELETE /api/v1/programs/{id}
		r.Get("/industries/{industry_id}", h.listByIndustry)         // GET    /api/v1/programs/industries/{id}
		r.Post("/{id}/subscriptions/{retailer_id}", h.subscribe)     // POST   /api/v1/programs/{id}/subscriptions/{rid}
		r.Get("/{id}/subscriptions", h.subscribers)                  // GET    /api/v1/programs/{id}/subscriptions
		r.Get("/{id}/subscriptions/{retailer_id}/progress", h.progress)
	})
}

func (h *Handler) launch(w http.ResponseWriter, r *http.Request) {
	var req CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Launch(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") || strings.Contains(msg, "must") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) listByIndustry(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.ListByIndustry(r.Context(), chi.URLParam(r, "industry_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, programs)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.Subscribe(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "retailer_id"))
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			code = http.StatusNotFound
		case strings.Contains(msg, "invalid"):
			code = http.StatusBadRequest
		case strings.Contains(msg, "not active"), strings.Contains(msg, "already subscribed"),
			strings.Contains(msg, "does not meet"):
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, sub)
}

func (h *Handler) subscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.Subscribers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, subs)
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Progress(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "retailer_id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
