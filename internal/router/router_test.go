package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/handler"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/utils"
)

const secret = "router-secret"

// Role checks run before any handler, so the handlers can stay unset.
func newServer() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, handler.Handlers{}, Options{JWTSecret: secret})
	return e
}

func bearer(t *testing.T, uid uint64, role model.Role) string {
	t.Helper()
	at, err := utils.NewAccessToken(secret, uid, string(role), 5)
	require.NoError(t, err)
	return at.Token
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := newServer()
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/v1/me"},
		{http.MethodGet, "/v1/jobs"},
		{http.MethodGet, "/v1/jobs/recommended"},
		{http.MethodPost, "/v1/jobs"},
		{http.MethodPost, "/v1/jobs/3/apply"},
		{http.MethodGet, "/v1/queries/queue"},
		{http.MethodPost, "/v1/admin/faqs"},
		{http.MethodPost, "/v1/chatbot/ask"},
	} {
		rec := serve(e, r.method, r.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
	}
}

func TestRoleGates(t *testing.T) {
	e := newServer()
	cand := bearer(t, 20, model.RoleCandidate)
	cons := bearer(t, 10, model.RoleConsultant)

	forbidden := []struct {
		method, path, token string
	}{
		{http.MethodPost, "/v1/jobs", cand},
		{http.MethodDelete, "/v1/jobs/4", cand},
		{http.MethodGet, "/v1/jobs/4/applicants", cand},
		{http.MethodPost, "/v1/applicants/4", cand},
		{http.MethodGet, "/v1/queries/queue", cand},
		{http.MethodGet, "/v1/jobs/recommended", cons},
		{http.MethodPost, "/v1/jobs/4/save", cons},
		{http.MethodPost, "/v1/jobs/4/apply", cons},
		{http.MethodPost, "/v1/jobs/4/queries", cons},
		{http.MethodGet, "/v1/profile/candidate", cons},
		{http.MethodPost, "/v1/admin/courses", cons},
		{http.MethodPatch, "/v1/admin/enrollments/1", cand},
	}
	for _, f := range forbidden {
		rec := serve(e, f.method, f.path, f.token)
		assert.Equal(t, http.StatusForbidden, rec.Code, f.method+" "+f.path)
		assert.JSONEq(t, `{"error":"forbidden","redirect":"/v1/jobs"}`, rec.Body.String())
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	rec := serve(newServer(), http.MethodGet, "/v1/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
