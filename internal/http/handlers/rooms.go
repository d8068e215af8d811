package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rps_arena/internal/domain"
	"rps_arena/internal/repository"
	"rps_arena/internal/service"
	"rps_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Hub     *ws.Hub
	Matches *repository.MatchRepository
}

func NewHandler(hub *ws.Hub, matches *repository.MatchRepository) *Handler {
	return &Handler{Hub: hub, Matches: matches}
}

// Корневой эндпоинт
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Rock Paper Scissors Online API"})
}

// Выделение новой комнаты с коротким кодом
func (h *Handler) CreateRoom(c *gin.Context) {
	room := h.Hub.CreateRoom()
	c.JSON(http.StatusOK, gin.H{"room_id": room.ID})
}

// Статус комнаты по коду. Неизвестная координатору комната
// отображается как пустая в фазе ожидания.
func (h *Handler) RoomStatus(c *gin.Context) {
	code := strings.ToUpper(c.Param("room_id"))

	players, phase := h.Hub.RoomStatus(code)
	c.JSON(http.StatusOK, gin.H{
		"room_id":       code,
		"players_count": players,
		"max_players":   ws.RoomCapacity,
		"game_state":    string(phase),
	})
}

// История завершённых матчей комнаты, новые первыми.
// Без настроенной базы история пуста.
func (h *Handler) MatchHistory(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"matches": []any{}})
		return
	}

	code := strings.ToUpper(c.Param("room_id"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	matches, err := h.Matches.GetByRoomID(c.Request.Context(), code, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать историю"})
		return
	}
	if matches == nil {
		matches = []domain.MatchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Гостевая сессия: непрозрачный id игрока и, если настроена подпись,
// токен для подключения по ws
func (h *Handler) GuestSession(c *gin.Context) {
	playerID := uuid.NewString()

	if !service.Enabled() {
		c.JSON(http.StatusOK, gin.H{"player_id": playerID})
		return
	}

	token, err := service.IssueToken(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось выдать токен"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"player_id": playerID, "token": token})
}
