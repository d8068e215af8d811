package ws

import "encoding/json"

// Входящие события
const (
	EventVideoFrame  = "video_frame"
	EventPlayerReady = "player_ready"
	EventRestart     = "restart_game"
)

// Исходящие события
const (
	EventPlayerJoined    = "player_joined"
	EventGameStart       = "game_start"
	EventCountdown       = "countdown"
	EventRoundStart      = "round_start"
	EventGestureDetected = "gesture_detected"
	EventOpponentFrame   = "opponent_frame"
	EventRoundResult     = "round_result"
	EventNextRound       = "next_round"
	EventGameEnd         = "game_end"
	EventGameRestarted   = "game_restarted"
	EventPlayerLeft      = "player_left"
	EventError           = "error"
)

// Inbound - закрытый словарь входящих событий.
// Неизвестные типы игнорируются, обязательные поля проверяются до диспетчеризации.
type Inbound struct {
	Type  string `json:"type"`
	Frame string `json:"frame,omitempty"`
}

// Message - исходящее событие. На проводе сериализуется в плоский объект
// с полем "type" рядом с пользовательскими полями.
type Message struct {
	Type   string
	Fields map[string]any
}

func NewMessage(typ string, fields map[string]any) Message {
	return Message{Type: typ, Fields: fields}
}

func (m Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+1)
	for k, v := range m.Fields {
		out[k] = v
	}
	out["type"] = m.Type
	return json.Marshal(out)
}
