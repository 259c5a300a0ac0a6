package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pokerhive.com/server/game"
	"pokerhive.com/server/server"
	"pokerhive.com/server/util"
)

var restLogger = util.GetZeroLogger("rest::rest", nil)

var (
	manager     *game.Manager
	hub         *server.Hub
	tokenSecret []byte
)

type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type tokenRequest struct {
	Name string `json:"name" binding:"required"`
}

type tokenResponse struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

// RunRestServer blocks serving the HTTP api: guest tokens, the lobby, and
// the websocket upgrade.
func RunRestServer(gameManager *game.Manager, wsHub *server.Hub, secret []byte, addr string) {
	manager = gameManager
	hub = wsHub
	tokenSecret = secret

	r := gin.Default()
	r.GET("/health", health)
	r.POST("/token", newToken)
	r.GET("/rooms", roomList)
	r.GET("/rooms/:id/hand", handSnapshot)
	r.GET("/ws", func(c *gin.Context) {
		hub.HandleUpgrade(c.Writer, c.Request)
	})
	r.Run(addr)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// newToken mints a guest identity. There are no accounts; the persistent id
// in the token is what survives reconnects.
func newToken(c *gin.Context) {
	var req tokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}
	playerID := uuid.New().String()
	token, err := server.IssueToken(tokenSecret, playerID, req.Name)
	if err != nil {
		restLogger.Error().Err(err).Msg("Failed to issue token")
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "could not issue token",
		})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{PlayerID: playerID, Token: token})
}

// handSnapshot reports the last persisted state of a room's running hand.
func handSnapshot(c *gin.Context) {
	snap, err := manager.LoadSnapshot(c.Param("id"))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, appError{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func roomList(c *gin.Context) {
	rooms := manager.Registry().List()
	out := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, gin.H{
			"roomId":      r.ID,
			"region":      r.Region,
			"playerCount": len(r.Players),
			"maxSeats":    r.MaxSeats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}
