package ws

import (
	"log"
	"strings"
	"sync"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/gesture"
	"rps_arena/internal/metrics"
	"rps_arena/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Вместимость комнаты фиксирована: ровно два участника
const RoomCapacity = 2

// Hub - реестр сессий: отображение игрок <-> соединение <-> комната.
// Явно создаётся в main и передаётся обработчикам, глобального состояния нет.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // живые соединения по id игрока
	rooms      map[string]*Room   // комнаты по коду
	playerRoom map[string]string  // id игрока -> код комнаты

	detector  gesture.Detector
	matchRepo *repository.MatchRepository
	clock     clockwork.Clock
}

func NewHub(detector gesture.Detector, matchRepo *repository.MatchRepository) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]*Room),
		playerRoom: make(map[string]string),
		detector:   detector,
		matchRepo:  matchRepo,
		clock:      clockwork.NewRealClock(),
	}
}

// NewRoomCode генерирует короткий код комнаты, которым можно поделиться
func NewRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// CreateRoom явно выделяет пустую комнату в фазе ожидания
func (h *Hub) CreateRoom() *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.createRoomLocked(NewRoomCode())
}

func (h *Hub) createRoomLocked(code string) *Room {
	room := newRoom(code, h, h.clock)
	h.rooms[code] = room
	metrics.ActiveRooms.Inc()
	log.Printf("Hub.CreateRoom: комната=%s создана", code)
	return room
}

// RoomStatus возвращает количество игроков и фазу комнаты.
// Неизвестная комната отображается как пустая в фазе ожидания.
func (h *Hub) RoomStatus(code string) (players int, phase domain.Phase) {
	h.mu.RLock()
	room, ok := h.rooms[code]
	h.mu.RUnlock()

	if !ok {
		return 0, domain.PhaseWaiting
	}
	return room.Status()
}

// Attach регистрирует живое соединение; идемпотентен по id игрока
func (h *Hub) Attach(playerID string, c *Client) {
	h.mu.Lock()
	if _, exists := h.clients[playerID]; !exists {
		metrics.ConnectedClients.Inc()
	}
	h.clients[playerID] = c
	h.mu.Unlock()

	log.Printf("Hub.Attach: игрок=%s подключен", playerID)
}

// Join сажает игрока в комнату, если есть свободное место.
// Возвращает комнату и false без каких-либо изменений, если комната заполнена.
// Отсутствующая комната выделяется на лету (путь подключения без REST).
func (h *Hub) Join(playerID, code string) (*Room, bool) {
	h.mu.Lock()
	c, attached := h.clients[playerID]
	if !attached {
		h.mu.Unlock()
		return nil, false
	}
	room, ok := h.rooms[code]
	if !ok {
		room = h.createRoomLocked(code)
	}
	h.mu.Unlock()

	if !room.seat(c) {
		log.Printf("Hub.Join: комната=%s заполнена, игрок=%s отклонён", code, playerID)
		return room, false
	}

	h.mu.Lock()
	h.playerRoom[playerID] = code
	h.mu.Unlock()

	log.Printf("Hub.Join: игрок=%s сел в комнату=%s", playerID, code)
	return room, true
}

// Detach снимает все записи об игроке и возвращает комнату, в которой он сидел.
// Безопасен при повторном вызове: без висячих записей в любом случае.
func (h *Hub) Detach(playerID string) *Room {
	h.mu.Lock()
	if _, exists := h.clients[playerID]; exists {
		metrics.ConnectedClients.Dec()
	}
	delete(h.clients, playerID)

	code, seated := h.playerRoom[playerID]
	delete(h.playerRoom, playerID)

	var room *Room
	if seated {
		room = h.rooms[code]
	}
	h.mu.Unlock()

	log.Printf("Hub.Detach: игрок=%s отключен, комната=%s", playerID, code)
	return room
}

// Send - доставка одному игроку, сбой изолирован этим соединением
func (h *Hub) Send(playerID string, msg Message) {
	h.mu.RLock()
	c, ok := h.clients[playerID]
	h.mu.RUnlock()

	if ok {
		c.deliver(msg)
	}
}

// removeRoom выбрасывает комнату и все записи рассадки её участников
func (h *Hub) removeRoom(code string) {
	h.mu.Lock()
	if _, ok := h.rooms[code]; ok {
		delete(h.rooms, code)
		metrics.ActiveRooms.Dec()
	}
	for pid, rid := range h.playerRoom {
		if rid == code {
			delete(h.playerRoom, pid)
		}
	}
	h.mu.Unlock()

	log.Printf("Hub.removeRoom: комната=%s удалена", code)
}

// StartCleanup запускает периодическую уборку никем не занятых комнат,
// чьи участники давно отключились
func (h *Hub) StartCleanup(interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			h.cleanupStaleRooms(maxIdle)
		}
	}()
}

func (h *Hub) cleanupStaleRooms(maxIdle time.Duration) {
	h.mu.Lock()
	now := time.Now()
	var stale []string
	for code, room := range h.rooms {
		players, _ := room.Status()
		if players == 0 && now.Sub(room.createdAt) > maxIdle {
			stale = append(stale, code)
		}
	}
	for _, code := range stale {
		delete(h.rooms, code)
		metrics.ActiveRooms.Dec()
		log.Printf("Hub.cleanupStaleRooms: удалена пустая комната=%s", code)
	}
	h.mu.Unlock()
}
