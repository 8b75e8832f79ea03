package handlers

import (
	"net/http"

	"github.com/pantryhq/pantry/internal/ports/inbound"
)

// CreatePlan handles POST /api/v1/plans
func (h *KitchenHandlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req createPlanRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), inbound.CreatePlanCommand{
		Owner:   owner,
		Date:    parseDay(req.Date),
		Entries: entryInputs(req.Entries),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, plan, "Plan created")
}

// UpdatePlan handles PUT /api/v1/plans/{id}
func (h *KitchenHandlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updatePlanRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	plan, err := h.service.UpdatePlan(r.Context(), inbound.UpdatePlanCommand{
		Owner:   owner,
		PlanID:  id,
		Date:    parseDay(req.Date),
		IsDone:  req.IsDone,
		Entries: entryInputs(req.Entries),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, plan, "Plan updated")
}

// DeletePlan handles DELETE /api/v1/plans/{id}
func (h *KitchenHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeletePlan(r.Context(), owner, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil, "Plan deleted")
}

// GetUpcomingPlans handles GET /api/v1/plans/upcoming
func (h *KitchenHandlers) GetUpcomingPlans(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	plans, err := h.service.GetUpcomingPlans(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, plans, "")
}

// GetClosedPlans handles GET /api/v1/plans/closed?page=N
func (h *KitchenHandlers) GetClosedPlans(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page, err := pageParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	plans, err := h.service.GetClosedPlans(r.Context(), owner, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, plans, "")
}
