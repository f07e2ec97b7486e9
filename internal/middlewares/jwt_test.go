package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	a "github.com/theyeesha/physioreact/pkg/auth"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, bearer string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestJWTAuthAcceptsAccessTokensOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter()

	access, err := a.CreateAccessToken("user-1", "PHYSIOTHERAPIST", "p@clinic.test", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, access))

	// a refresh token is not a session credential
	refresh, err := a.CreateRefreshToken("user-1", "PHYSIOTHERAPIST", "p@clinic.test", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, refresh))

	assert.Equal(t, http.StatusUnauthorized, get(r, ""))
	assert.Equal(t, http.StatusUnauthorized, get(r, "not-a-token"))
}
