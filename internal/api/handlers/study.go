package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/httpx"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/middleware"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/services"
)

type StudyHandler struct {
	Svc *services.StudyService
}

func NewStudyHandler(svc *services.StudyService) *StudyHandler {
	return &StudyHandler{Svc: svc}
}

func (h *StudyHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return
	}
	items, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	if items == nil {
		items = []models.StudyItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *StudyHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return
	}
	var req struct {
		Title   string `json:"title"`
		Subject string `json:"subject"`
		DueDate string `json:"due_date"` // YYYY-MM-DD
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	var due time.Time
	if req.DueDate != "" {
		var err error
		if due, err = time.ParseInLocation("2006-01-02", req.DueDate, time.UTC); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation", "due_date: must be YYYY-MM-DD", nil)
			return
		}
	}
	item, err := h.Svc.Add(r.Context(), uid, req.Title, req.Subject, due)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *StudyHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return
	}
	item, err := h.Svc.ToggleStatus(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
