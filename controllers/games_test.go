package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Gamenight/controllers"
	"Gamenight/services/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func gamesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/games", controllers.GetAllGames)
	r.GET("/api/games/:game_key", controllers.GetGameInfo)
	return r
}

func TestGetAllGames(t *testing.T) {
	router := gamesRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var games []catalog.Entry
	err := json.Unmarshal(w.Body.Bytes(), &games)
	assert.NoError(t, err)
	assert.Equal(t, catalog.ListAll(), games)
}

func TestGetGameInfo(t *testing.T) {
	router := gamesRouter()

	t.Run("known game", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/games/trivia", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var entry catalog.Entry
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		assert.Equal(t, "trivia", entry.Key)
	})

	t.Run("unknown game", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/games/nonexistent", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
