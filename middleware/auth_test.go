package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignSessionToken("ABC123", "Bob")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", claims.RoomCode)
	assert.Equal(t, "Bob", claims.PlayerName)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignSessionToken("ABC123", "Bob")
	assert.NoError(t, err)

	_, err = ParseSessionToken(token + "x")
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignSessionToken("ABC123", "Bob")
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestSessionRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", SessionRequired, func(c *gin.Context) {
		claims, err := SessionFromContext(c)
		assert.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"player_name": claims.PlayerName})
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := SignSessionToken("ABC123", "Bob")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Bob")
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
