package http

import (
	"time"

	"rps_arena/internal/config"
	"rps_arena/internal/http/handlers"
	"rps_arena/internal/http/middleware"
	"rps_arena/internal/repository"
	"rps_arena/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes вешает REST-поверхность и маршрут апгрейда ws
func RegisterRoutes(r *gin.Engine, hub *ws.Hub, matches *repository.MatchRepository, cfg *config.Config) {
	h := handlers.NewHandler(hub, matches)

	r.GET("/", h.Root)
	r.POST("/create-room", middleware.RateLimit(30, time.Minute), h.CreateRoom)
	r.GET("/room/:room_id/status", h.RoomStatus)
	r.GET("/room/:room_id/matches", h.MatchHistory)
	r.POST("/session", middleware.RateLimit(60, time.Minute), h.GuestSession)

	r.GET("/ws/:room_id/:player_id", ws.HandleWS(hub, cfg.AllowedOrigin))
}
