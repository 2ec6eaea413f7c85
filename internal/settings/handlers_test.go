package settings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/settings"
)

func newAdminRouter(t *testing.T) (*chi.Mux, *settings.MemoryStore) {
	t.Helper()
	store := settings.NewMemoryStore()
	svc, err := settings.NewService(store)
	require.NoError(t, err)
	handler := &settings.Handler{Service: svc}

	r := chi.NewRouter()
	r.Route("/api/v1/admin/settings", func(a chi.Router) {
		a.Get("/{domain}", handler.Get)
		a.Put("/{domain}", handler.Put)
	})
	return r, store
}

func TestAdminGetReturnsResolvedDefaults(t *testing.T) {
	r, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings/installments-rules", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data settings.InstallmentRules `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, 12, body.Data.MaxInstallments)
	require.Equal(t, "accordion", body.Data.TableDisplayType)
}

func TestAdminPutPersistsAndEchoesResolved(t *testing.T) {
	r, store := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings/installments-rules",
		strings.NewReader(`{"enabled":"1","max_installments":6,"junk_key":"x"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data settings.InstallmentRules `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.True(t, body.Data.Enabled)
	require.Equal(t, 6, body.Data.MaxInstallments)

	stored, err := store.Get(req.Context(), settings.DomainInstallmentRules)
	require.NoError(t, err)
	require.NotContains(t, stored, "junk_key")
}

func TestAdminPutRejectsOutOfBounds(t *testing.T) {
	r, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings/installments-rules",
		strings.NewReader(`{"max_installments":99}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAdminUnknownDomainIs404(t *testing.T) {
	r, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings/nope", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminPutBadBodyIs400(t *testing.T) {
	r, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings/pricing-global",
		strings.NewReader(`{broken`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
