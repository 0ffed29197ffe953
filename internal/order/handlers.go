package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ycl-dev/storefront/internal/common"
)

// Handler exposes the order placement and history endpoints.
type Handler struct {
	Service *Service
}

type orderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

// Place handles POST /api/order.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "order service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, common.StatusFail, "missing or invalid token", nil)
		return
	}
	// The request body is a bare array of lines.
	var req []orderLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StatusAddOrderFail, "invalid request payload", nil)
		return
	}
	lines := make([]Line, 0, len(req))
	for _, line := range req {
		lines = append(lines, Line{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	placed, err := h.Service.Place(r.Context(), userID, lines)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, placed)
}

// Details handles GET /api/order/orderdetails.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "order service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, common.StatusFail, "missing or invalid token", nil)
		return
	}
	details, err := h.Service.Details(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, details)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.RespondError(w, status, appErr.Status, appErr.Message, appErr.Errors)
		return
	}
	common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "internal error", nil)
}
