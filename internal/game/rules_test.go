package game

import (
	"testing"

	"rps_arena/internal/domain"
)

var allMoves = []domain.Move{domain.MoveRock, domain.MovePaper, domain.MoveScissors, domain.MoveNone}

func TestDecide_TotalAndSymmetric(t *testing.T) {
	for _, a := range allMoves {
		for _, b := range allMoves {
			got := Decide(a, b)
			if got != domain.OutcomeWin && got != domain.OutcomeLose && got != domain.OutcomeDraw {
				t.Fatalf("Decide(%s,%s) вернул неизвестный результат %q", a, b, got)
			}
			// результат с точки зрения второй стороны - зеркальный
			if inv := Decide(b, a); inv != got.Invert() {
				t.Fatalf("Decide(%s,%s)=%s, но Decide(%s,%s)=%s", a, b, got, b, a, inv)
			}
		}
	}
}

func TestDecide_Dominance(t *testing.T) {
	cases := []struct {
		a, b domain.Move
		want domain.Outcome
	}{
		{domain.MoveRock, domain.MoveScissors, domain.OutcomeWin},
		{domain.MoveScissors, domain.MovePaper, domain.OutcomeWin},
		{domain.MovePaper, domain.MoveRock, domain.OutcomeWin},
		{domain.MoveScissors, domain.MoveRock, domain.OutcomeLose},
		{domain.MovePaper, domain.MoveScissors, domain.OutcomeLose},
		{domain.MoveRock, domain.MovePaper, domain.OutcomeLose},
	}
	for _, c := range cases {
		if got := Decide(c.a, c.b); got != c.want {
			t.Errorf("Decide(%s,%s)=%s, ожидалось %s", c.a, c.b, got, c.want)
		}
	}
}

func TestDecide_SameMoveIsDraw(t *testing.T) {
	for _, m := range allMoves[:3] {
		if got := Decide(m, m); got != domain.OutcomeDraw {
			t.Errorf("Decide(%s,%s)=%s, ожидалась ничья", m, m, got)
		}
	}
}

func TestDecide_AbsentAlwaysLoses(t *testing.T) {
	for _, m := range allMoves[:3] {
		if got := Decide(m, domain.MoveNone); got != domain.OutcomeWin {
			t.Errorf("показанный жест %s должен побеждать отсутствующий, got=%s", m, got)
		}
		if got := Decide(domain.MoveNone, m); got != domain.OutcomeLose {
			t.Errorf("отсутствующий жест должен проигрывать %s, got=%s", m, got)
		}
	}
	if got := Decide(domain.MoveNone, domain.MoveNone); got != domain.OutcomeDraw {
		t.Errorf("два отсутствующих жеста - ничья, got=%s", got)
	}
}

func TestWinner(t *testing.T) {
	if w := Winner("p1", "p2", domain.MoveRock, domain.MoveScissors); w != "p1" {
		t.Errorf("ожидался p1, got=%q", w)
	}
	if w := Winner("p1", "p2", domain.MoveNone, domain.MovePaper); w != "p2" {
		t.Errorf("ожидался p2, got=%q", w)
	}
	if w := Winner("p1", "p2", domain.MoveRock, domain.MoveRock); w != "" {
		t.Errorf("при ничьей победителя нет, got=%q", w)
	}
}

func TestMaxScore(t *testing.T) {
	max, leaders := MaxScore(map[string]int{"a": 3, "b": 5})
	if max != 5 || len(leaders) != 1 || leaders[0] != "b" {
		t.Fatalf("max=%d leaders=%v", max, leaders)
	}

	max, leaders = MaxScore(map[string]int{"a": 5, "b": 5})
	if max != 5 || len(leaders) != 2 {
		t.Fatalf("при равном счёте оба лидеры: max=%d leaders=%v", max, leaders)
	}
}
