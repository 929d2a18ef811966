package handlers

import (
	"net/http"
	"strconv"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/httpx"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/fx"
)

type FxHandler struct {
	Svc *fx.Service
}

func NewFxHandler(svc *fx.Service) *FxHandler {
	return &FxHandler{Svc: svc}
}

// Rate returns the current USD→XOF rate, plus a formatted CFA preview
// when an amount query parameter is supplied.
func (h *FxHandler) Rate(w http.ResponseWriter, r *http.Request) {
	rate := h.Svc.USDToXOFRate(r.Context())
	resp := map[string]any{"rate": rate}
	if raw := r.URL.Query().Get("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation", "amount: not a valid number", nil)
			return
		}
		resp["formatted"] = fx.ToCFA(amount, rate)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
