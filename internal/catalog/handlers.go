package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ycl-dev/storefront/internal/common"
)

// Handler exposes REST endpoints for the product catalog.
type Handler struct {
	Service *Service
}

type productRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int32  `json:"quantity"`
}

// List handles GET /api/product.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "catalog service not configured", nil)
		return
	}
	products, err := h.Service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, products)
}

// Get handles GET /api/product/{productID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "productID")
	if strings.TrimSpace(id) == "" {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "product id is required", nil)
		return
	}
	product, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, product)
}

// Create handles POST /api/product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "catalog service not configured", nil)
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "invalid request payload", nil)
		return
	}
	product, err := h.Service.Add(r.Context(), Input(req))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, product)
}

// Update handles PUT /api/product/{productID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "productID")
	if strings.TrimSpace(id) == "" {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "product id is required", nil)
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "invalid request payload", nil)
		return
	}
	product, err := h.Service.Update(r.Context(), id, Input(req))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, product)
}

// Delete handles DELETE /api/product/{productID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.RespondError(w, http.StatusInternalServerError, common.StatusFail, "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "productID")
	if strings.TrimSpace(id) == "" {
		common.RespondError(w, http.StatusBadRequest, common.StatusFail, "product id is required", nil)
		return
	}
	if err := h.Service.Remove(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, common.StatusSuccess, nil)
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
