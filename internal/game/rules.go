package game

import "rps_arena/internal/domain"

// Очки для победы в матче
const WinThreshold = 5

// Decide определяет результат одного раунда камень-ножницы-бумага
// с точки зрения первого хода. Правило тотальное и симметричное:
// отсутствующий жест всегда проигрывает любому показанному жесту.
func Decide(a, b domain.Move) domain.Outcome {
	if !a.Valid() && !b.Valid() {
		return domain.OutcomeDraw
	}
	if !a.Valid() {
		return domain.OutcomeLose
	}
	if !b.Valid() {
		return domain.OutcomeWin
	}
	if a == b {
		return domain.OutcomeDraw
	}

	switch a {
	case domain.MoveRock:
		if b == domain.MoveScissors {
			return domain.OutcomeWin
		}
	case domain.MovePaper:
		if b == domain.MoveRock {
			return domain.OutcomeWin
		}
	case domain.MoveScissors:
		if b == domain.MovePaper {
			return domain.OutcomeWin
		}
	}

	return domain.OutcomeLose
}

// Winner возвращает id победителя раунда или "" при ничьей
func Winner(p1, p2 string, m1, m2 domain.Move) string {
	switch Decide(m1, m2) {
	case domain.OutcomeWin:
		return p1
	case domain.OutcomeLose:
		return p2
	}
	return ""
}

// MaxScore возвращает максимальный счёт и всех игроков, набравших его
func MaxScore(scores map[string]int) (int, []string) {
	max := 0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	var leaders []string
	for id, s := range scores {
		if s == max {
			leaders = append(leaders, id)
		}
	}
	return max, leaders
}
