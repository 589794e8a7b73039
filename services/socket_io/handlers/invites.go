package handlers

import (
	"log"
	"time"

	models "Gamenight/models/postgres"
	redis_models "Gamenight/models/redis"
	"Gamenight/services/catalog"
	"Gamenight/services/redis"
	"Gamenight/services/session"
	socketio_types "Gamenight/services/socket_io/types"
	"Gamenight/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle sending a game invite to another player. The invite is
// written to the persistent inbox and, when the target is connected, pushed
// into their InviteLifecycleManager and delivered on their socket.
func HandleSendInvite(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	roomCode string, playerName string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing invited player name"})
			return
		}
		invitedName, ok := args[0].(string)
		if !ok || invitedName == "" {
			client.Emit("error", gin.H{"error": "Invited player name must be a string"})
			return
		}
		if invitedName == playerName {
			client.Emit("error", gin.H{"error": "You cannot invite yourself"})
			return
		}

		room, err := utils.CheckRoomExists(db, roomCode)
		if err != nil {
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		gameName := room.GameKey
		if entry, err := catalog.Lookup(room.GameKey); err == nil {
			gameName = entry.Name
		}

		invitation := models.GameInvitation{
			ID:          uuid.NewString(),
			RoomCode:    roomCode,
			HostName:    playerName,
			InvitedName: invitedName,
			GameKey:     room.GameKey,
		}
		if err := db.Create(&invitation).Error; err != nil {
			log.Printf("[INVITE-ERROR] could not persist invitation: %v", err)
			client.Emit("error", gin.H{"error": "Error sending invite"})
			return
		}

		invite := session.GameInvite{
			ID:         invitation.ID,
			HostName:   playerName,
			GameName:   gameName,
			RoomID:     roomCode,
			ReceivedAt: time.Now(),
		}

		// Live delivery only when the target is connected; otherwise the
		// persistent inbox catches them on next login.
		delivered := sio.WithInvites(invitedName, func(im *session.InviteLifecycleManager) {
			im.Receive(invite)
		})
		if delivered {
			if target, exists := sio.GetConnection(invitedName); exists {
				target.Emit("game_invite", gin.H{
					"id":          invite.ID,
					"host_name":   invite.HostName,
					"game_name":   invite.GameName,
					"room_id":     invite.RoomID,
					"received_at": invite.ReceivedAt,
				})
			}
		}

		// Presence tells the host whether the target will even see the
		// live event, or only the persistent inbox.
		invitedStatus := redis_models.StatusOffline
		if presence, err := redisClient.GetPlayerPresence(invitedName); err == nil && presence != nil {
			invitedStatus = presence.Status
		}

		client.Emit("invite_sent", gin.H{
			"id":             invite.ID,
			"invited_name":   invitedName,
			"invited_status": invitedStatus,
			"delivered":      delivered,
		})
		log.Printf("[INVITE] %s invited %s to room %s (live=%v)",
			playerName, invitedName, roomCode, delivered)
	}
}

// Function to handle accepting a game invite. The lifecycle manager does
// the state transition and yields the navigation intent; this handler only
// forwards that intent to the accepting client and clears the inbox row.
// Navigation itself stays on the client.
func HandleAcceptInvite(client *socket.Socket, db *gorm.DB,
	playerName string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing invite id"})
			return
		}
		inviteID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invite id must be a string"})
			return
		}

		var result *session.AcceptResult
		var acceptErr error
		hasSession := sio.WithInvites(playerName, func(im *session.InviteLifecycleManager) {
			result, acceptErr = im.Accept(inviteID)
		})
		if !hasSession {
			// The invite manager lives with the connection entry; a racing
			// disconnect of another socket under the same name removes it.
			client.Emit("error", gin.H{"error": "No invite session for this connection"})
			return
		}
		if acceptErr != nil {
			// Stale UI reference (already resolved or expired), not fatal
			log.Printf("[INVITE] accept of %s by %s: %v", inviteID, playerName, acceptErr)
			client.Emit("error", gin.H{"error": "Invite is no longer available"})
			return
		}

		if err := db.Where("id = ?", inviteID).Delete(&models.GameInvitation{}).Error; err != nil {
			log.Printf("[INVITE-WARN] could not delete invitation %s: %v", inviteID, err)
		}

		client.Emit("navigate_to_room", gin.H{
			"room_code": result.NavigateToRoomID,
			"invite_id": inviteID,
		})
	}
}

// Function to handle declining a game invite.
func HandleDeclineInvite(client *socket.Socket, db *gorm.DB,
	playerName string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing invite id"})
			return
		}
		inviteID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invite id must be a string"})
			return
		}

		var declineErr error
		hasSession := sio.WithInvites(playerName, func(im *session.InviteLifecycleManager) {
			declineErr = im.Decline(inviteID)
		})
		if !hasSession {
			client.Emit("error", gin.H{"error": "No invite session for this connection"})
			return
		}
		if declineErr != nil {
			log.Printf("[INVITE] decline of %s by %s: %v", inviteID, playerName, declineErr)
			client.Emit("error", gin.H{"error": "Invite is no longer available"})
			return
		}

		if err := db.Where("id = ?", inviteID).Delete(&models.GameInvitation{}).Error; err != nil {
			log.Printf("[INVITE-WARN] could not delete invitation %s: %v", inviteID, err)
		}

		client.Emit("invite_declined", gin.H{"invite_id": inviteID})
	}
}

// Function to send the player their pending invites snapshot (arrival
// order, already pruned of expired ones).
func HandleListInvites(client *socket.Socket, playerName string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		var pending []session.GameInvite
		hasSession := sio.WithInvites(playerName, func(im *session.InviteLifecycleManager) {
			pending = im.ListPending()
		})
		if !hasSession {
			client.Emit("error", gin.H{"error": "No invite session for this connection"})
			return
		}
		client.Emit("pending_invites", gin.H{"invites": pending})
	}
}
