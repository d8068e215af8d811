package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rps_arena/internal/gesture"
	"rps_arena/internal/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	// кадры приходят как base64 jpeg, лимит с запасом
	maxMessageSize = 2 << 20
	sendBufferSize = 256

	detectTimeout = 5 * time.Second
)

// Client - одно ws-соединение: цикл чтения с диспетчеризацией входящих
// событий и цикл записи с ping'ами. События одного соединения
// обрабатываются в порядке прихода.
type Client struct {
	PlayerID string
	RoomCode string
	Conn     *websocket.Conn
	Send     chan []byte

	hub  *Hub
	room *Room
}

func NewClient(playerID, roomCode string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		PlayerID: playerID,
		RoomCode: roomCode,
		Conn:     conn,
		Send:     make(chan []byte, sendBufferSize),
		hub:      hub,
	}
}

// Run подключает клиента к реестру, сажает в комнату и крутит цикл чтения.
// Отказ по вместимости не рвёт соединение: клиент остаётся подключенным
// без комнаты и получает событие об отказе.
func (c *Client) Run() {
	c.hub.Attach(c.PlayerID, c)
	go c.writePump()

	room, ok := c.hub.Join(c.PlayerID, c.RoomCode)
	if ok {
		c.room = room
	} else {
		log.Printf("Client.Run: игрок=%s не попал в комнату=%s", c.PlayerID, c.RoomCode)
		c.deliver(NewMessage(EventError, map[string]any{
			"message": "Room is full",
		}))
	}

	c.readPump()
}

// deliver - неблокирующая доставка одному соединению.
// Переполненный буфер означает мёртвого или захлебнувшегося клиента:
// событие отбрасывается, остальных получателей это не касается.
func (c *Client) deliver(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Client.deliver: ошибка сериализации: %v", err)
		return
	}

	select {
	case c.Send <- data:
	default:
		log.Printf("Client.deliver: буфер игрока=%s заполнен, событие %s отброшено", c.PlayerID, msg.Type)
	}
}

func (c *Client) readPump() {
	defer c.disconnect()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client.readPump: игрок=%s ошибка чтения: %v", c.PlayerID, err)
			}
			return
		}
		c.dispatch(raw)
	}
}

// dispatch разбирает входящее событие и маршрутизирует его.
// Нечитаемое событие отбрасывается, неизвестный тип игнорируется -
// ни то ни другое не роняет цикл.
func (c *Client) dispatch(raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Printf("Client.dispatch: игрок=%s нечитаемое событие отброшено: %v", c.PlayerID, err)
		return
	}

	switch in.Type {
	case EventVideoFrame:
		c.handleFrame(in.Frame)
	case EventPlayerReady:
		if c.room != nil {
			c.room.MarkReady(c.PlayerID)
		}
	case EventRestart:
		if c.room != nil {
			c.room.Restart(c.PlayerID)
		}
	default:
		// неизвестные типы - не ошибка
	}
}

// handleFrame прогоняет кадр через классификатор, отвечает отправителю
// распознанным жестом, записывает ход в открытом окне и пересылает сырой
// кадр второму игроку в любом случае.
func (c *Client) handleFrame(frame string) {
	if c.room == nil || frame == "" {
		return
	}

	data, err := gesture.DecodeFrame(frame)
	if err != nil {
		log.Printf("Client.handleFrame: игрок=%s кадр не декодируется: %v", c.PlayerID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	move, confidence, err := c.hub.detector.Detect(ctx, data)
	cancel()
	if err != nil {
		log.Printf("Client.handleFrame: игрок=%s классификация не удалась: %v", c.PlayerID, err)
		return
	}

	metrics.FramesClassified.WithLabelValues(string(move)).Inc()

	c.deliver(NewMessage(EventGestureDetected, map[string]any{
		"gesture":    string(move),
		"confidence": confidence,
	}))

	if move.Valid() {
		c.room.RecordMove(c.PlayerID, move)
	}

	c.room.RelayFrame(c.PlayerID, frame)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Client.writePump: игрок=%s ошибка записи: %v", c.PlayerID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// disconnect освобождает реестр и рвёт комнату, если игрок был посажен
func (c *Client) disconnect() {
	room := c.hub.Detach(c.PlayerID)
	if room != nil {
		room.participantLeft(c.PlayerID)
	}
	_ = c.Conn.Close()
}
