package handlers

import (
	"net/http"
)

// GenerateList handles POST /api/v1/lists/generate
func (h *KitchenHandlers) GenerateList(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.service.GenerateList(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if result.Empty {
		h.writeJSON(w, http.StatusOK, nil, "Nothing to buy")
		return
	}
	h.writeJSON(w, http.StatusCreated, result, "Shopping list generated")
}

// GetOpenList handles GET /api/v1/lists/open
func (h *KitchenHandlers) GetOpenList(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.service.GetOpenList(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list, "")
}

// GetList handles GET /api/v1/lists/{id}
func (h *KitchenHandlers) GetList(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.service.GetList(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list, "")
}

// GetClosedLists handles GET /api/v1/lists/closed?page=N
func (h *KitchenHandlers) GetClosedLists(w http.ResponseWriter, r *http.Request) {
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

	lists, err := h.service.GetClosedLists(r.Context(), owner, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lists, "")
}

// UpdateList handles PUT /api/v1/lists/{id}
func (h *KitchenHandlers) UpdateList(w http.ResponseWriter, r *http.Request) {
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

	var req updateListRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.service.UpdateList(r.Context(), req.command(owner, id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list, "Shopping list updated")
}

// DeleteList handles DELETE /api/v1/lists/{id}
func (h *KitchenHandlers) DeleteList(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteList(r.Context(), owner, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil, "Shopping list deleted")
}
