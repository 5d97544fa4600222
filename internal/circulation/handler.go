// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"libtrack/internal/auth"
	"libtrack/internal/catalog"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the loans report, open to any authenticated caller.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/loans", h.handleListLoans)
}

// UserRoutes mounts issue and return, which act on the authenticated user's
// own loans.
func (h *Handler) UserRoutes(r chi.Router) {
	r.Post("/issue", h.handleIssue)
	r.Post("/return", h.handleReturn)
}

// FineRoutes mounts the fine review and payment routes.
func (h *Handler) FineRoutes(r chi.Router) {
	r.Get("/", h.handleReviewFines)
	r.Post("/pay", h.handlePayFines)
}

// AdminFineRoutes mounts the all-users overdue report.
func (h *Handler) AdminFineRoutes(r chi.Router) {
	r.Get("/overdue", h.handleReviewAllFines)
}

type loanRequest struct {
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemType, err := catalog.ParseItemType(req.ItemType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.service.IssueItem(r.Context(), user.Username, itemType, req.ItemName, time.Now())
	if err != nil {
		writeCirculationError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemType, err := catalog.ParseItemType(req.ItemType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	overdueDays, err := h.service.ReturnItem(r.Context(), user.Username, itemType, req.ItemName, time.Now())
	if err != nil {
		writeCirculationError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]int{"overdue_days": overdueDays})
}

func (h *Handler) handleListLoans(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListActiveLoans(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(records)
}

func (h *Handler) handleReviewFines(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	review, err := h.service.ReviewFines(r.Context(), user.Username, time.Now())
	if err != nil {
		writeCirculationError(w, err)
		return
	}

	json.NewEncoder(w).Encode(review)
}

func (h *Handler) handlePayFines(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	review, err := h.service.PayFines(r.Context(), user.Username, time.Now())
	if err != nil {
		writeCirculationError(w, err)
		return
	}

	json.NewEncoder(w).Encode(review)
}

func (h *Handler) handleReviewAllFines(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ReviewAllFines(r.Context(), time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(reviews)
}

func writeCirculationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrItemUnavailable), errors.Is(err, ErrNotEntitled), errors.Is(err, ledger.ErrNoOpenLoan):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, membership.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
