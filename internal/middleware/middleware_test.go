package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, role models.UserRole, expires time.Time) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "u-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", JWT(NewTokenVerifier(testSecret)), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, Claims(c).UserID)
	})
	return r
}

func call(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRouteAcceptsAdminToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), models.RoleAdmin, time.Now().Add(time.Hour))
	w := call(adminRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestAdminRouteRejections(t *testing.T) {
	r := adminRouter()

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "Token abc").Code)

	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), models.RoleAdmin, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+wrongKey).Code)

	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), models.RoleAdmin, time.Now().Add(-time.Hour))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+expired).Code)

	hs512 := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), models.RoleAdmin, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+hs512).Code)

	teacher := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), models.RoleTeacher, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusForbidden, call(r, "Bearer "+teacher).Code)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/students/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"10101", "10102"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/"+id, nil))
	}

	count, err := testutil.GatherAndCount(metrics.Registry(), "remedial_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
