package ws

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"rps_arena/internal/domain"
)

func TestNewRoomCode(t *testing.T) {
	code := NewRoomCode()
	if len(code) != 8 {
		t.Fatalf("длина кода=%d, ожидалось 8", len(code))
	}
	if code != strings.ToUpper(code) {
		t.Fatalf("код должен быть в верхнем регистре: %q", code)
	}
}

func TestJoin_ThirdPlayerRejectedWithoutMutation(t *testing.T) {
	h := newTestHub()
	room, _, _ := seatPair(t, h, time.Millisecond, time.Hour, time.Hour)

	c3 := newTestClient(h, "p3")
	h.Attach("p3", c3)

	if _, ok := h.Join("p3", room.ID); ok {
		t.Fatal("третий игрок не должен попадать в комнату")
	}

	// состояние комнаты не тронуто, p3 подключен, но без комнаты
	if players, _ := room.Status(); players != 2 {
		t.Fatalf("в комнате %d игроков, ожидалось 2", players)
	}
	h.mu.RLock()
	_, attached := h.clients["p3"]
	_, seated := h.playerRoom["p3"]
	h.mu.RUnlock()
	if !attached {
		t.Fatal("отклонённый игрок должен остаться подключенным")
	}
	if seated {
		t.Fatal("отклонённый игрок не должен числиться в комнате")
	}

	// повторная попытка сесть падает так же
	if _, ok := h.Join("p3", room.ID); ok {
		t.Fatal("повторная попытка тоже должна отклоняться")
	}
}

func TestJoin_UnknownRoomAllocatedOnTheFly(t *testing.T) {
	h := newTestHub()

	c1 := newTestClient(h, "p1")
	h.Attach("p1", c1)

	room, ok := h.Join("p1", "AB12CD34")
	if !ok || room == nil {
		t.Fatal("подключение в несуществующую комнату должно выделять её")
	}
	if room.ID != "AB12CD34" {
		t.Fatalf("код комнаты=%q", room.ID)
	}
	if players, phase := h.RoomStatus("AB12CD34"); players != 1 || phase != domain.PhaseWaiting {
		t.Fatalf("players=%d phase=%s", players, phase)
	}
}

func TestJoin_NotAttachedRejected(t *testing.T) {
	h := newTestHub()
	if _, ok := h.Join("ghost", "AB12CD34"); ok {
		t.Fatal("неподключенный игрок не может сесть в комнату")
	}
}

func TestAttach_Idempotent(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "p1")
	h.Attach("p1", c)
	h.Attach("p1", c)

	h.mu.RLock()
	n := len(h.clients)
	h.mu.RUnlock()
	if n != 1 {
		t.Fatalf("clients=%d, ожидался 1", n)
	}
}

func TestRoomStatus_UnknownRoomIsWaiting(t *testing.T) {
	h := newTestHub()
	players, phase := h.RoomStatus("NOPE1234")
	if players != 0 || phase != domain.PhaseWaiting {
		t.Fatalf("players=%d phase=%s, ожидалось 0/waiting", players, phase)
	}
}

func TestSend_UnknownPlayerIsNoop(t *testing.T) {
	h := newTestHub()
	// не должно паниковать и что-либо менять
	h.Send("ghost", NewMessage(EventError, map[string]any{"message": "x"}))
}

func TestMessage_MarshalsFlat(t *testing.T) {
	data, err := json.Marshal(NewMessage(EventCountdown, map[string]any{"count": 3}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["type"] != EventCountdown || m["count"].(float64) != 3 {
		t.Fatalf("плоский формат нарушен: %s", data)
	}
}
