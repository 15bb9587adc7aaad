package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vantora/leadhub/internal/entity"
	"github.com/vantora/leadhub/internal/infra/http/middleware"
	"github.com/vantora/leadhub/internal/usecase"
)

type LeadHandler struct {
	Leads *usecase.LeadUseCase
}

func NewLeadHandler(leads *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{Leads: leads}
}

// HandleList handles GET /leads with search/filter/sort/pagination params.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := usecase.ListLeadsInput{
		Search: q.Get("search"),
		Stage:  q.Get("stage"),
		Source: q.Get("source"),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		input.Limit = limit
	}

	output, err := h.Leads.List(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err, "error fetching leads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leads":      output.Leads,
		"pagination": output.Pagination,
	})
}

// HandleGet handles GET /leads/{id}.
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Leads.GetByID(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, err, "error fetching lead")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lead": lead})
}

// HandleCreate handles POST /leads.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.Leads.Create(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err, "error creating lead")
		return
	}

	middleware.RecordLeadCreated(lead.Source)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "lead created successfully",
		"lead":    lead,
	})
}

// HandleUpdate handles PUT /leads/{id} with partial-update semantics.
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdateLeadInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.Leads.Update(r.Context(), id, input)
	if err != nil {
		respondUseCaseError(w, err, "error updating lead")
		return
	}

	if input.Stage != nil && lead.Stage == entity.StageConverted {
		middleware.RecordLeadConverted()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "lead updated successfully",
		"lead":    lead,
	})
}

// HandleDelete handles DELETE /leads/{id}, returning the deleted snapshot.
func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Leads.Delete(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, err, "error deleting lead")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "lead deleted successfully",
		"lead":    lead,
	})
}

// HandleStats handles GET /leads/stats.
func (h *LeadHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leads.Stats(r.Context())
	if err != nil {
		respondUseCaseError(w, err, "error fetching lead statistics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
