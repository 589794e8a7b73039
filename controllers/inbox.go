package controllers

import (
	"net/http"

	"Gamenight/middleware"
	models "Gamenight/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllReceivedInvitations godoc
// @Summary Get all game invitations for the session's player
// @Description Retrieve all persistent game invitations where the session's player is the recipient. Each invitation includes the host's name, the game and the room code to join.
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer session token"
// @Success 200 {object} map[string]interface{} "game_invitations"
// @Failure 401 {object} map[string]string "error: unauthorized"
// @Failure 500 {object} map[string]string "error: Error retrieving game invitations"
// @Router /api/session/invitations [get]
// @Security ApiKeyAuth
func GetAllReceivedInvitations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := middleware.SessionFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var invitations []models.GameInvitation
		if err := db.Where("invited_name = ?", claims.PlayerName).
			Order("created_at").Find(&invitations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving game invitations"})
			return
		}

		var invitationsInfo []gin.H
		for _, invitation := range invitations {
			invitationsInfo = append(invitationsInfo, gin.H{
				"id":        invitation.ID,
				"host_name": invitation.HostName,
				"game_key":  invitation.GameKey,
				"room_code": invitation.RoomCode,
				"sent_at":   invitation.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"game_invitations": invitationsInfo})
	}
}

// DeleteInvitation godoc
// @Summary Delete a game invitation
// @Description Remove a persistent invitation addressed to the session's player, e.g. after it was accepted or dismissed in the UI.
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer session token"
// @Param invitation_id path string true "Id of the invitation"
// @Success 200 {object} map[string]string "message"
// @Failure 401 {object} map[string]string "error: unauthorized"
// @Failure 404 {object} map[string]string "error: Invitation not found"
// @Failure 500 {object} map[string]string "error: Error deleting invitation"
// @Router /api/session/invitations/{invitation_id} [delete]
// @Security ApiKeyAuth
func DeleteInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := middleware.SessionFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result := db.Where(
			"id = ? AND invited_name = ?",
			c.Param("invitation_id"), claims.PlayerName,
		).Delete(&models.GameInvitation{})

		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting invitation"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted"})
	}
}
