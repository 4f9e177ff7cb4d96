package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/todo-app/apiserver/internal/services"
	"github.com/todo-app/apiserver/internal/store"
	"github.com/todo-app/apiserver/types"
	"go.uber.org/zap"
)

// ItemHandler provides HTTP handlers for todo items.
type ItemHandler struct {
	itemService *services.ItemService
	log         *zap.Logger
}

// NewItemHandler constructs a handler with the provided service.
func NewItemHandler(itemService *services.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		log:         log,
	}
}

// ItemRouter registers item routes on the given router. Every route is
// protected: authentication implies full access to every item, there is
// no per-user ownership.
func ItemRouter(
	r chi.Router,
	itemService *services.ItemService,
	authMiddleware func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	handler := NewItemHandler(itemService, log)

	r.Use(authMiddleware)
	r.Get("/", handler.ListItems)
	r.Post("/", handler.CreateItem)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Put("/", handler.UpdateItem)
		r.Delete("/", handler.DeleteItem)
	})
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	req, err := parseItemBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.itemService.Create(r.Context(), types.Item{
		Name:       req.Name,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	identity, _ := identityFromContext(r.Context())
	h.log.Info("item created",
		zap.Int("item_id", created.ID),
		zap.String("name", created.Name),
		zap.String("by", identity.Username),
	)
	w.Header().Set("Location", fmt.Sprintf("/items/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := parseItemBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.itemService.Update(r.Context(), types.Item{
		ID:         id,
		Name:       req.Name,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.log.Info("item updated", zap.Int("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.itemService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.log.Info("item deleted", zap.Int("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ItemUpsertRequest is the JSON body for create and update.
type ItemUpsertRequest struct {
	Name       string `json:"name"`
	IsComplete bool   `json:"isComplete"`
}

func parseItemBody(r *http.Request) (ItemUpsertRequest, error) {
	var req ItemUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ItemUpsertRequest{}, errors.New("invalid request")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return ItemUpsertRequest{}, errors.New("name is required")
	}
	return req, nil
}

func parseItemID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid item id")
	}
	return id, nil
}
