package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ycl-dev/storefront/internal/common"
)

// Handler exposes HTTP handlers for token issuance and inspection.
type Handler struct {
	Service *Service
}

type tokenRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// IssueToken handles POST /api/token.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "auth service not configured", nil)
		return
	}
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "invalid request payload", nil)
		return
	}
	result, err := h.Service.IssueToken(r.Context(), req.Name, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, result)
}

// Roles handles GET /api/token/roles. It reads roles from the validated
// token claims rather than hitting the database again.
func (h *Handler) Roles(w http.ResponseWriter, r *http.Request) {
	claims, ok := common.ClaimsFrom(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, common.StatusFail, "missing or invalid token", nil)
		return
	}
	if len(claims.Roles) == 0 {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "token carries no roles", nil)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, claims.Roles)
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
