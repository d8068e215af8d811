package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectedClients - количество открытых ws-соединений
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_connected_clients",
		Help: "Number of open websocket connections.",
	})

	// ActiveRooms - количество живых комнат
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_active_rooms",
		Help: "Number of allocated rooms.",
	})

	// RoundsEvaluated - сколько раундов было разрешено, по пути завершения
	RoundsEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_rounds_evaluated_total",
		Help: "Rounds resolved, by completion trigger.",
	}, []string{"trigger"}) // "moves" | "timeout"

	// FramesClassified - распознанные кадры по жестам
	FramesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_frames_classified_total",
		Help: "Camera frames classified, by resulting gesture.",
	}, []string{"gesture"})

	// MatchesFinished - завершённые матчи
	MatchesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_matches_finished_total",
		Help: "Matches that reached the winning threshold.",
	})
)
