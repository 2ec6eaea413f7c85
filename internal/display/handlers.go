package display

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/catalog"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/common"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/placement"
)

// Handler exposes the public display endpoints.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// ProductPage handles GET /api/v1/products/{id}/display. One request is one
// page render: the RenderContext lives exactly as long as this call.
func (h *Handler) ProductPage(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	rc := placement.NewRenderContext()
	page, err := h.service.ProductPage(r.Context(), productID, rc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": page})
}

// GalleryCard handles GET /api/v1/products/{id}/gallery.
func (h *Handler) GalleryCard(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	rc := placement.NewRenderContext()
	card, err := h.service.GalleryCard(r.Context(), productID, rc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": card})
}

// ManualPix handles GET /api/v1/products/{id}/pix, the manual-placement
// entry point. It shares its computation with the automatic page path.
func (h *Handler) ManualPix(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "id")
	payload, err := h.service.PixFor(r.Context(), idOrSlug, false)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": payload})
}

// GridPix handles GET /api/v1/grid/pix?product=<id-or-slug>. The grid is
// refreshed asynchronously and repeatedly, so an unknown product yields an
// empty success rather than an error, and results are cached.
func (h *Handler) GridPix(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.URL.Query().Get("product")
	if idOrSlug == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "product query parameter is required", nil)
		return
	}
	payload, err := h.service.PixFor(r.Context(), idOrSlug, true)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			common.JSON(w, http.StatusOK, map[string]any{"data": nil})
			return
		}
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": payload})
}

type linesRequest struct {
	Location string        `json:"location"`
	Lines    []LineRequest `json:"lines"`
}

// Lines handles POST /api/v1/cart/display for cart and checkout line
// recomputes.
func (h *Handler) Lines(w http.ResponseWriter, r *http.Request) {
	var req linesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	location := Location(req.Location)
	if location == "" {
		location = LocationCart
	}
	if location != LocationCart && location != LocationCheckout {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "location must be cart or checkout", nil)
		return
	}
	result, err := h.service.Lines(r.Context(), location, req.Lines)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", map[string]any{"id": raw})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := appErr.Code
		if code == "" {
			code = "INTERNAL"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
