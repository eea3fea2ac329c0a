package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctorhouse/booking-api/internal/models"
	"github.com/doctorhouse/booking-api/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func verifiedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": VerifiedEmail(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := doGet(verifiedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMissingBearerPrefix(t *testing.T) {
	token, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	w := doGet(verifiedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	w := doGet(verifiedRouter(), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTamperedToken(t *testing.T) {
	token, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	w := doGet(verifiedRouter(), "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAttachesEmail(t *testing.T) {
	token, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	w := doGet(verifiedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, w.Body.String())
}

func staticLookup(role string, err error) RoleLookup {
	return func(ctx context.Context, email string) (string, error) {
		return role, err
	}
}

func TestRequireRole(t *testing.T) {
	token, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		lookup RoleLookup
		want   int
	}{
		{"admin passes", staticLookup(models.RoleAdmin, nil), http.StatusOK},
		{"patient forbidden", staticLookup(models.RolePatient, nil), http.StatusForbidden},
		{"missing role forbidden", staticLookup("", nil), http.StatusForbidden},
		{"unknown user forbidden", staticLookup("", ErrUnknownUser), http.StatusForbidden},
		{"lookup failure is a server error", staticLookup("", errors.New("store down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := verifiedRouter(RequireRole(models.RoleAdmin, tt.lookup))
			w := doGet(r, "Bearer "+token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

// RequireRole without a preceding verifier must fail closed, not panic.
func TestRequireRoleWithoutVerifier(t *testing.T) {
	r := gin.New()
	r.GET("/protected", RequireRole(models.RoleAdmin, staticLookup(models.RoleAdmin, nil)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
