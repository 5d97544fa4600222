// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the public catalog listing routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{type}", h.handleListItems)
}

// AdminRoutes mounts the catalog mutation routes.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/{type}", h.handleAddItem)
	r.Patch("/{type}/{name}", h.handleUpdateItem)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	itemType, err := ParseItemType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter, err := ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.service.ListItems(r.Context(), itemType, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(items)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	itemType, err := ParseItemType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Creator string `json:"creator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Creator == "" {
		http.Error(w, "name and creator are required", http.StatusBadRequest)
		return
	}

	item, err := h.service.AddItem(r.Context(), itemType, req.Name, req.Creator)
	if err != nil {
		if errors.Is(err, ErrDuplicateItem) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemType, err := ParseItemType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateItem(r.Context(), itemType, chi.URLParam(r, "name"), req.Available); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
