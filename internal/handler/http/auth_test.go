package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(svc jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(svc.JWTAuth()))
		r.Use(middleware.AuthRequired(svc.JWTAuth()))

		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			employeeID, err := employeeIDFromRequest(r)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(employeeID))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})
	return r
}

func TestAuthRequired_AcceptsIssuedToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	router := authTestRouter(svc)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "emp-1", "employee")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-1", rec.Body.String())
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	router := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsForeignSignature(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	other := jwt.NewJWTService("other-secret", "15m")
	router := authTestRouter(svc)

	token, _, err := other.GenerateAccessToken("user-1", "emp-1", "employee")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly_RejectsEmployeeRole(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	router := authTestRouter(svc)

	token, _, err := svc.GenerateAccessToken("user-1", "emp-1", "employee")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnly_AcceptsAdminRole(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	router := authTestRouter(svc)

	token, _, err := svc.GenerateAccessToken("user-2", "emp-2", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
