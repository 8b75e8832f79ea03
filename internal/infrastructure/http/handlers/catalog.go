package handlers

import (
	"net/http"

	"github.com/pantryhq/pantry/internal/ports/inbound"
)

// CreateItem handles POST /api/v1/items
func (h *KitchenHandlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req itemRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), inbound.CreateItemCommand{
		Owner:    owner,
		Name:     req.Name,
		Unit:     req.Unit,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item, "Item created")
}

// SearchItems handles GET /api/v1/items?q=
func (h *KitchenHandlers) SearchItems(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.service.SearchItems(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items, "")
}

// UpdateItem handles PUT /api/v1/items/{id}
func (h *KitchenHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var req itemRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), inbound.UpdateItemCommand{
		Owner:    owner,
		ItemID:   id,
		Name:     req.Name,
		Unit:     req.Unit,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item, "Item updated")
}

// CreateRecipe handles POST /api/v1/recipes
func (h *KitchenHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req createRecipeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ingredients := make([]inbound.IngredientInput, len(req.Ingredients))
	for i, in := range req.Ingredients {
		ingredients[i] = inbound.IngredientInput{ItemID: in.ItemID, Amount: in.Amount}
	}

	recipe, err := h.service.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		Owner:       owner,
		Name:        req.Name,
		Ingredients: ingredients,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, recipe, "Recipe created")
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *KitchenHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
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

	recipe, err := h.service.GetRecipe(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipe, "")
}

// ListRecipes handles GET /api/v1/recipes?page=N
func (h *KitchenHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
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

	recipes, err := h.service.ListRecipes(r.Context(), owner, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipes, "")
}

// AddMustBuy handles POST /api/v1/must-buy
func (h *KitchenHandlers) AddMustBuy(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req mustBuyRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	flag, err := h.service.AddMustBuy(r.Context(), owner, req.ItemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, flag, "Item flagged")
}

// ListMustBuy handles GET /api/v1/must-buy
func (h *KitchenHandlers) ListMustBuy(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	flags, err := h.service.ListMustBuy(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, flags, "")
}
