package inventory

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/batches", h.addBatch)                            // POST   /api/v1/inventory/batches
		r.Get("/batches/{id}", h.getBatch)                        // GET    /api/v1/inventory/batches/{id}
		r.Patch("/batches/{id}", h.updateBatch)                   // PATCH  /api/v1/inventory/batches/{id}
		r.Delete("/batches/{id}", h.removeBatch)                  // DELETE /api/v1/inventory/batches/{id}
		r.Get("/retailers/{retailer_id}/batches", h.listBatches)  // GET    /api/v1/inventory/retailers/{id}/batches
		r.Get("/retailers/{retailer_id}/products", h.productView) // GET    /api/v1/inventory/retailers/{id}/products
	})
}

func (h *Handler) addBatch(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.AddBatch(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "invalid") || strings.Contains(msg, "must not") {
			code = http.StatusBadRequest
		} else if strings.Contains(msg, "not in catalog") {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) updateBatch(w http.ResponseWriter, r *http.Request) {
	var req UpdateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.UpdateBatch(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "invalid") || strings.Contains(msg, "must not") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) removeBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveBatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) listBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.service.ListBatches(r.Context(), chi.URLParam(r, "retailer_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, batches)
}

func (h *Handler) productView(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ProductViews(r.Context(), chi.URLParam(r, "retailer_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, views)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
