// internal/export/handler.go
package export

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libtrack/internal/catalog"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

// Handler serves CSV snapshots of each store for download.
type Handler struct {
	catalog    catalog.Service
	membership membership.Service
	ledger     ledger.Service
}

func NewHandler(cat catalog.Service, mem membership.Service, led ledger.Service) *Handler {
	return &Handler{catalog: cat, membership: mem, ledger: led}
}

// AdminRoutes mounts the download routes.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/{dataset}", h.handleExport)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")

	var write func(http.ResponseWriter) error
	switch dataset {
	case "books":
		write = func(w http.ResponseWriter) error {
			items, err := h.catalog.ListItems(r.Context(), catalog.TypeBook, catalog.FilterAll)
			if err != nil {
				return err
			}
			return WriteItems(w, items)
		}
	case "movies":
		write = func(w http.ResponseWriter) error {
			items, err := h.catalog.ListItems(r.Context(), catalog.TypeMovie, catalog.FilterAll)
			if err != nil {
				return err
			}
			return WriteItems(w, items)
		}
	case "users":
		write = func(w http.ResponseWriter) error {
			users, err := h.membership.ListUsers(r.Context())
			if err != nil {
				return err
			}
			return WriteUsers(w, users)
		}
	case "loans":
		write = func(w http.ResponseWriter) error {
			records, err := h.ledger.ListAll(r.Context())
			if err != nil {
				return err
			}
			return WriteLoans(w, records)
		}
	default:
		http.Error(w, "unknown dataset: "+dataset, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", dataset))
	if err := write(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
