package repository

import (
	"context"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// сохраняет запись о завершённом матче
func (r *MatchRepository) Create(ctx context.Context, m *domain.MatchRecord) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO matches (room_id, player_a_id, player_b_id, winner_id, score_a, score_b, rounds, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, m.RoomID, m.PlayerAID, m.PlayerBID, m.WinnerID,
		m.Scores[m.PlayerAID], m.Scores[m.PlayerBID], m.Rounds, m.FinishedAt)

	return row.Scan(&m.ID)
}

// получает последние матчи комнаты (новые первыми)
func (r *MatchRepository) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.MatchRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, player_a_id, player_b_id, winner_id, score_a, score_b, rounds, finished_at
		FROM matches
		WHERE room_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`, roomID, limit)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var out []domain.MatchRecord
	for rows.Next() {
		var m domain.MatchRecord
		var scoreA, scoreB int
		if err := rows.Scan(
			&m.ID, &m.RoomID, &m.PlayerAID, &m.PlayerBID, &m.WinnerID, &scoreA, &scoreB, &m.Rounds, &m.FinishedAt,
		); err != nil {
			return nil, err
		}
		m.Scores = map[string]int{m.PlayerAID: scoreA, m.PlayerBID: scoreB}
		out = append(out, m)
	}
	return out, rows.Err()
}
