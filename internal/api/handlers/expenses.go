package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/httpx"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/feed"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/middleware"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	repo "github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/services"
)

type ExpenseHandler struct {
	Svc      *services.ExpenseService
	Profiles repo.Profiles
	Feed     *feed.Listener
}

func NewExpenseHandler(svc *services.ExpenseService, profiles repo.Profiles, fl *feed.Listener) *ExpenseHandler {
	return &ExpenseHandler{Svc: svc, Profiles: profiles, Feed: fl}
}

func (h *ExpenseHandler) currentUser(w http.ResponseWriter, r *http.Request) (models.Profile, bool) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return models.Profile{}, false
	}
	p, err := h.Profiles.GetByID(r.Context(), uid)
	if err != nil {
		// the auth provider vouched for the id; a missing row only
		// matters for the synthesized display name
		p = models.Profile{ID: uid}
	}
	return p, true
}

func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		ItemName string `json:"item_name"`
		Amount   string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}

	res, err := h.Svc.RecordExpense(r.Context(), user, req.ItemName, req.Amount)
	if err != nil {
		if apperr.IsPartialFailure(err) {
			// the expense IS in the ledger; hand it back so the caller
			// can decide what to do about the missing debit
			httpx.WriteAppError(w, err, res)
			return
		}
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	order := models.ExpenseOrder(r.URL.Query().Get("order"))
	if order == "" {
		order = models.OrderByCreatedAt
	}
	expenses, err := h.Svc.List(r.Context(), user.ID, order)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	httpx.WriteJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) GetAllowance(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	bal, err := h.Svc.Allowance(r.Context(), user.ID)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bal)
}

func (h *ExpenseHandler) SaveAllowance(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	bal, err := h.Svc.SaveAllowance(r.Context(), user, req.Amount)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bal)
}

// Stream pushes the user's expense changes over server-sent events. A
// session-scoped view seeded from the authoritative listing filters out
// feed echoes of rows the session already has.
func (h *ExpenseHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported", nil)
		return
	}

	// subscribe before seeding so nothing falls between the two
	sub := h.Feed.Subscribe(r.Context(), user.ID)
	defer sub.Close()

	view := feed.NewView()
	if expenses, err := h.Svc.List(r.Context(), user.ID, models.OrderByCreatedAt); err == nil {
		view.Seed(expenses)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	writeSSE(w, "snapshot", view.Snapshot())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			if !view.Apply(ev) {
				continue // duplicate echo of a row this session already has
			}
			writeSSE(w, "change", ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b)
}
