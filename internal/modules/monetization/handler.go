package monetization

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes monetization HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/proposals", func(r chi.Router) {
		r.Post("/", h.propose)                                // POST /api/v1/proposals
		r.Get("/{id}", h.getProposal)                         // GET  /api/v1/proposals/{id}
		r.Post("/{id}/accept", h.accept)                      // POST /api/v1/proposals/{id}/accept
		r.Post("/{id}/reject", h.reject)                      // POST /api/v1/proposals/{id}/reject
		r.Get("/retailers/{retailer_id}", h.retailerHistory)  // GET  /api/v1/proposals/retailers/{id}
		r.Get("/industries/{industry_id}", h.industryHistory) // GET  /api/v1/proposals/industries/{id}
	})
	r.Route("/api/v1/funds", func(r chi.Router) {
		r.Post("/", h.openFund)                                  // POST   /api/v1/funds
		r.Get("/", h.listFunds)                                  // GET    /api/v1/funds
		r.Get("/{id}", h.getFund)                                // GET    /api/v1/funds/{id}
		r.Post("/{id}/close", h.closeFund)                       // POST   /api/v1/funds/{id}/close
		r.Post("/{id}/members/{retailer_id}", h.addMember)       // POST   /api/v1/funds/{id}/members/{rid}
		r.Delete("/{id}/members/{retailer_id}", h.removeMember)  // DELETE /api/v1/funds/{id}/members/{rid}
		r.Get("/{id}/proposals", h.fundHistory)                  // GET    /api/v1/funds/{id}/proposals
	})
}

func (h *Handler) propose(w http.ResponseWriter, r *http.Request) {
	var req CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Propose(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProposal(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProposal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) { h.decide(w, r, true) }
func (h *Handler) reject(w http.ResponseWriter, r *http.Request) { h.decide(w, r, false) }

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, accept bool) {
	p, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), accept)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) retailerHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.RetailerProposals(r.Context(), chi.URLParam(r, "retailer_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, list)
}

func (h *Handler) industryHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.IndustryProposals(r.Context(), chi.URLParam(r, "industry_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, list)
}

func (h *Handler) openFund(w http.ResponseWriter, r *http.Request) {
	var req CreateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, err := h.service.OpenFund(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, f)
}

func (h *Handler) listFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.service.ListFunds(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, funds)
}

func (h *Handler) getFund(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.GetFund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, f)
}

func (h *Handler) closeFund(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.CloseFund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, f)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.AddMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "retailer_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, f)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "retailer_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, f)
}

func (h *Handler) fundHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FundHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, list)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must"):
		return http.StatusBadRequest
	case strings.Contains(msg, "closed") || strings.Contains(msg, "already") ||
		strings.Contains(msg, "only PENDING") || strings.Contains(msg, "not a member"):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
