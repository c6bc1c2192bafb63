// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/curio/internal/adapters/repository"
)

// ItemsHandler handles the /items collection and /items/{item_id} routes.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// HandleCollection handles GET /items and POST /items requests.
func (h *ItemsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ListItems(r.Context()))
}

func (h *ItemsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_item"
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, err))
		return
	}

	item, err := h.deps.CreateItem(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			writeError(w, http.StatusBadRequest, "duplicate_name", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HandleItem handles GET /items/{item_id} and DELETE /items/{item_id} requests.
func (h *ItemsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.item_by_id"

	// Extract path parameter after /items/
	path := strings.TrimPrefix(r.URL.Path, "/items/")
	if path == "" || strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, errors.New("item_id must be an integer")))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	const op = "api.get_item"
	item, err := h.deps.GetItem(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	const op = "api.delete_item"
	if err := h.deps.DeleteItem(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
