package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/common"
	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/obs"
)

// Handler exposes the admin settings endpoints. The domain path segment uses
// a dash where the domain name has a slash: pricing-global, pricing-design,
// installments-rules, installments-design.
type Handler struct {
	Service *Service
}

var pathToDomain = map[string]Domain{
	"pricing-global":      DomainPricingGlobal,
	"pricing-design":      DomainPricingDesign,
	"installments-rules":  DomainInstallmentRules,
	"installments-design": DomainInstallmentDesign,
}

// Get handles GET /api/v1/admin/settings/{domain}: the fully resolved
// record, defaults included.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	domain, ok := h.domain(w, r)
	if !ok {
		return
	}
	resolved, err := h.Service.Resolved(r.Context(), domain)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resolved})
}

// Put handles PUT /api/v1/admin/settings/{domain}: validates and persists a
// sparse override map.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	domain, ok := h.domain(w, r)
	if !ok {
		return
	}
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Service.Update(r.Context(), domain, values); err != nil {
		if obs.SettingsUpdateTotal != nil {
			obs.SettingsUpdateTotal.WithLabelValues(string(domain), "rejected").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.SettingsUpdateTotal != nil {
		obs.SettingsUpdateTotal.WithLabelValues(string(domain), "applied").Inc()
	}
	resolved, err := h.Service.Resolved(r.Context(), domain)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resolved})
}

func (h *Handler) domain(w http.ResponseWriter, r *http.Request) (Domain, bool) {
	raw := chi.URLParam(r, "domain")
	domain, ok := pathToDomain[raw]
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "unknown settings domain", map[string]any{"domain": raw})
		return "", false
	}
	return domain, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalid):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrUnknownDomain):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "unknown settings domain", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
