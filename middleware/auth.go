package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are handed out by the join endpoint and identify the
// (room, player name) pair for the rest of the session: REST calls carry
// them as a Bearer header, the socket.io handshake carries them in auth.

const sessionContextKey = "gamenight_session"

type SessionClaims struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// SignSessionToken creates the token returned by a successful join.
func SignSessionToken(roomCode, playerName string) (string, error) {
	claims := SessionClaims{
		RoomCode:   roomCode,
		PlayerName: playerName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseSessionToken validates a token string and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.RoomCode == "" || claims.PlayerName == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SessionRequired guards routes that need an active room session.
func SessionRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if header == "" || tokenString == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
		return
	}

	claims, err := ParseSessionToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
		return
	}

	c.Set(sessionContextKey, claims)
	c.Next()
}

// SessionFromContext returns the claims stored by SessionRequired.
func SessionFromContext(c *gin.Context) (*SessionClaims, error) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, errors.New("no session in context")
	}
	claims, ok := value.(*SessionClaims)
	if !ok {
		return nil, errors.New("no session in context")
	}
	return claims, nil
}
