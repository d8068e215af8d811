package domain

import "time"

// Жест игрока
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
	MoveNone     Move = "none" // жест отсутствует / не распознан
)

// Valid сообщает, что ход является одним из трёх боевых жестов
func (m Move) Valid() bool {
	return m == MoveRock || m == MovePaper || m == MoveScissors
}

// Фазы комнаты
type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseCountdown  Phase = "countdown"
	PhasePlaying    Phase = "playing"
	PhaseEvaluating Phase = "evaluating"
	PhaseEnded      Phase = "ended"
)

// Результат одного раунда с точки зрения первого игрока
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// Invert возвращает результат с точки зрения второго игрока
func (o Outcome) Invert() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLose
	case OutcomeLose:
		return OutcomeWin
	default:
		return OutcomeDraw
	}
}

// Запись завершённого матча для истории
type MatchRecord struct {
	ID         int64          `db:"id" json:"id"`
	RoomID     string         `db:"room_id" json:"room_id"`
	PlayerAID  string         `db:"player_a_id" json:"player_a_id"`
	PlayerBID  string         `db:"player_b_id" json:"player_b_id"`
	WinnerID   *string        `db:"winner_id" json:"winner_id"` // nil при ничьей на пороге
	Scores     map[string]int `db:"-" json:"scores"`
	Rounds     int            `db:"rounds" json:"rounds"`
	FinishedAt time.Time      `db:"finished_at" json:"finished_at"`
}
