package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/ycl-dev/storefront/internal/common"
)

// Handler exposes the account registration endpoint.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

type registerRequest struct {
	Name     string   `json:"name" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,required"`
}

// Register handles POST /api/user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "user service not configured", nil)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StatusAddUserFail, "invalid request payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StatusAddUserFail, "validation failed", validationMessages(err))
			return
		}
	}
	created, err := h.Service.Register(r.Context(), req.Name, req.Password, req.Roles)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, created)
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

func validationMessages(err error) []string {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		messages = append(messages, fmt.Sprintf("%s failed on the %s rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return messages
}
