package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func TestParseBearer(t *testing.T) {
	good := signed(t, testSecret, validClaims("staff"))

	userID, role, err := parseBearer("Bearer "+good, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "staff", role)

	cases := map[string]struct {
		header string
		want   error
	}{
		"missing":      {"", errMissingHeader},
		"no scheme":    {good, errInvalidHeader},
		"wrong scheme": {"Basic " + good, errInvalidHeader},
		"bad secret":   {"Bearer " + signed(t, "other", validClaims("staff")), errInvalidToken},
		"expired": {"Bearer " + signed(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}), errInvalidToken},
		"numeric sub": {"Bearer " + signed(t, testSecret, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(time.Hour).Unix(),
		}), errInvalidSub},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseBearer(tc.header, testSecret)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.GetString(ContextUserID),
			"role": c.GetString(ContextUserRole),
		})
	})
	r.GET("/x", handlers...)
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := protectedRouter(AuthMiddleware(cfg))

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing_authorization_header"}`, w.Body.String())

	w = get(r, "Bearer "+signed(t, testSecret, validClaims("patient")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-1","role":"patient"}`, w.Body.String())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := protectedRouter(OptionalAuthMiddleware(cfg))

	w := get(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"","role":""}`, w.Body.String())

	w = get(r, "Bearer "+signed(t, testSecret, validClaims("patient")))
	assert.JSONEq(t, `{"user":"user-1","role":"patient"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := protectedRouter(AuthMiddleware(cfg), RequireRole("staff"))

	w := get(r, "Bearer "+signed(t, testSecret, validClaims("patient")))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "Bearer "+signed(t, testSecret, validClaims("staff")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(8)
	r := gin.New()
	r.POST("/book", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, post("203.0.113.7"))
	assert.Equal(t, http.StatusCreated, post("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, post("203.0.113.7"))

	assert.Equal(t, http.StatusCreated, post("198.51.100.1"), "limits are per client")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://clinic.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://clinic.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { panic("nil map") })

	w := get(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error_code":"internal_error","message":"Unexpected error."}`, w.Body.String())
}
