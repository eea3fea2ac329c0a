package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorhouse/booking-api/internal/middleware"
	"github.com/doctorhouse/booking-api/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// testRouter serves the pre-store paths: every request here fails (or
// finishes) before the first collection call, so no database backs it.
// The post-store paths run in store_test.go against a mock deployment.
func testRouter() *gin.Engine {
	return routerWithDB(nil)
}

func routerWithDB(db *mongo.Database) *gin.Engine {
	h := &Handler{DB: db}
	verify := middleware.AuthMiddleware()

	r := gin.New()
	r.POST("/jwt", h.IssueToken)
	r.POST("/users", h.RegisterUser)
	r.GET("/users/admin/:email", verify, h.CheckAdmin)
	r.PATCH("/users/admin/:id", verify, h.ElevateUser)
	r.POST("/carts", verify, h.AddCartItem)
	r.PATCH("/carts/:id", verify, h.UpdateCartItem)
	r.DELETE("/carts/:id", verify, h.RemoveCartItem)
	r.POST("/menu", verify, h.CreateMenuItem)
	r.PATCH("/menu/:id", verify, h.UpdateMenuItem)
	r.POST("/appointments", verify, h.CreateAppointment)
	r.PATCH("/appointments/:id", verify, h.UpdateAppointment)
	r.DELETE("/appointments/:id", verify, h.CancelAppointment)
	r.PUT("/userprofile", verify, h.UpsertProfile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func patientToken(t *testing.T, email string) string {
	t.Helper()
	token, err := utils.GenerateJWT(email)
	require.NoError(t, err)
	return token
}

func TestIssueToken(t *testing.T) {
	r := testRouter()

	t.Run("rejects a missing email", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/jwt", `{}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/jwt", `{"email":"not-an-email"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/jwt", `{"email":"a@x.com"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success   bool   `json:"success"`
			Token     string `json:"token"`
			ExpiresIn int    `json:"expiresIn"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 3600, resp.ExpiresIn)

		claims, err := utils.ValidateJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})
}

func TestRegisterUserValidation(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodPost, "/users", `{"userName":"zubaer"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Asking about anyone else's admin status is forbidden before the
// store is ever consulted.
func TestCheckAdminSelfOnly(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/users/admin/b@x.com", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckAdminRequiresToken(t *testing.T) {
	r := testRouter()

	w := doJSON(t, r, http.MethodGet, "/users/admin/a@x.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestElevateUserRejectsBadID(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPatch, "/users/admin/not-hex", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCartItemValidation(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/carts", `{"name":"Dr. Smith"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemRejectsBadID(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPatch, "/carts/not-hex", `{"name":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemEmptyPatch(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPatch, "/menu/507f1f77bcf86cd799439011", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentValidation(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing doctorId", `{"date":"2026-09-01"}`},
		{"missing date", `{"doctorId":"507f1f77bcf86cd799439011"}`},
		{"empty body", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/appointments", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateAppointmentEmptyPatch(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPatch, "/appointments/507f1f77bcf86cd799439011", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertProfileValidation(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodPut, "/userprofile", `{"gender":"male"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorEnvelope(t *testing.T) {
	r := testRouter()
	token := patientToken(t, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/users/admin/b@x.com", "", token)
	require.Equal(t, http.StatusForbidden, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}
