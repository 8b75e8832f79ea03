// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/infrastructure/http/middleware"
	"github.com/pantryhq/pantry/internal/infrastructure/security"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// KitchenHandlers handles the pantry REST API
type KitchenHandlers struct {
	service   inbound.KitchenService
	validator *security.Validator
	logger    *zap.Logger
}

// NewKitchenHandlers creates a new handlers instance
func NewKitchenHandlers(
	service inbound.KitchenService,
	validator *security.Validator,
	logger *zap.Logger,
) *KitchenHandlers {
	return &KitchenHandlers{
		service:   service,
		validator: validator,
		logger:    logger.Named("kitchen-api"),
	}
}

// Routes mounts the kitchen endpoints on r
func (h *KitchenHandlers) Routes(r chi.Router) {
	r.Route("/lists", func(r chi.Router) {
		r.Post("/generate", h.GenerateList)
		r.Get("/open", h.GetOpenList)
		r.Get("/closed", h.GetClosedLists)
		r.Get("/{id}", h.GetList)
		r.Put("/{id}", h.UpdateList)
		r.Delete("/{id}", h.DeleteList)
	})

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", h.CreatePlan)
		r.Get("/upcoming", h.GetUpcomingPlans)
		r.Get("/closed", h.GetClosedPlans)
		r.Put("/{id}", h.UpdatePlan)
		r.Delete("/{id}", h.DeletePlan)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.CreateItem)
		r.Get("/", h.SearchItems)
		r.Put("/{id}", h.UpdateItem)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Post("/", h.CreateRecipe)
		r.Get("/", h.ListRecipes)
		r.Get("/{id}", h.GetRecipe)
	})

	r.Route("/must-buy", func(r chi.Router) {
		r.Post("/", h.AddMustBuy)
		r.Get("/", h.ListMustBuy)
	})
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response
func (h *KitchenHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data, Message: message}); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps err onto the error envelope. Anything that is not an
// AppError is reported as an internal error.
func (h *KitchenHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, "")
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}
	middleware.WriteError(w, r, appErr, 0)
}

// decode reads a JSON body into dst and validates it
func (h *KitchenHandlers) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewBadRequestError(fmt.Sprintf("Invalid request body: %v", err))
	}
	return h.validator.Struct(dst)
}

// owner returns the authenticated owner
func (h *KitchenHandlers) owner(r *http.Request) (string, error) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		return "", apperrors.NewUnauthorizedError("")
	}
	return owner, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid id")
	}
	return id, nil
}

func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperrors.NewBadRequestError("page must be a positive integer")
	}
	return page, nil
}
