package actor

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes actor HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/actors", func(r chi.Router) {
		r.Post("/", h.register)              // POST   /api/v1/actors
		r.Get("/{id}", h.get)                // GET    /api/v1/actors/{id}
		r.Put("/{id}", h.update)             // PUT    /api/v1/actors/{id}
		r.Delete("/{id}", h.remove)          // DELETE /api/v1/actors/{id}
		r.Get("/retailers", h.listRetailers) // GET    /api/v1/actors/retailers
		r.Get("/suppliers", h.listSuppliers) // GET    /api/v1/actors/suppliers
		r.Get("/industries", h.listIndustries)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req CreateActorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a, err := h.service.Register(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, a)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req CreateActorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) listRetailers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListRetailers)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListSuppliers)
}

func (h *Handler) listIndustries(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListIndustries)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context) ([]*Actor, error)) {
	actors, err := fn(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, actors)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
