package ws

import (
	"log"
	"net/http"
	"strings"

	"rps_arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS апгрейдит соединение и запускает клиента.
// Идентичность берётся из гостевого токена, если подпись настроена,
// иначе - непрозрачный id игрока из пути (локальная игра).
func HandleWS(hub *Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		roomCode := strings.ToUpper(c.Param("room_id"))
		playerID := c.Param("player_id")

		if token := c.Query("token"); token != "" && service.Enabled() {
			id, err := service.ParseToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "неверный токен"})
				return
			}
			playerID = id
		}

		if roomCode == "" || playerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_id и player_id обязательны"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("ошибка обновления ws:", err)
			return
		}

		client := NewClient(playerID, roomCode, conn, hub)
		go client.Run()
	}
}
