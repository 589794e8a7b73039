package controllers

import (
	"net/http"

	"Gamenight/services/catalog"

	"github.com/gin-gonic/gin"
)

// @Summary Lists all selectable games
// @Description Returns the game catalog in a stable order
// @Tags games
// @Produce json
// @Success 200 {array} catalog.Entry
// @Router /api/games [get]
func GetAllGames(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ListAll())
}

// @Summary Gives info of a game
// @Description Given a game key, returns its catalog entry
// @Tags games
// @Produce json
// @Param game_key path string true "Key of the game wanted"
// @Success 200 {object} catalog.Entry
// @Failure 404 {object} object{error=string}
// @Router /api/games/{game_key} [get]
func GetGameInfo(c *gin.Context) {
	entry, err := catalog.Lookup(c.Param("game_key"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}
