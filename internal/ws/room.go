package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/game"
	"rps_arena/internal/metrics"

	"github.com/jonboulle/clockwork"
)

// Тайминги раунда по умолчанию
const (
	countdownTicks    = 3
	countdownInterval = time.Second
	moveWindow        = 5 * time.Second
	resultPause       = 3 * time.Second
)

// Room - одна комната: рассадка, счёт, ходы текущего раунда и машина фаз.
//
// Всё изменяемое состояние закрыто мьютексом. Логически конкурентные триггеры
// ("оба сходили" и "окно истекло") сериализуются через жетон раунда: окно при
// открытии получает свежий жетон, а evaluate сперва сверяет и продвигает жетон
// и только потом делает всё остальное. Проигравший гонку триггер - no-op.
// Рестарт и отключение продвигают жетон, делая любые отложенные таймеры немыми.
type Room struct {
	ID  string
	hub *Hub

	mu      sync.Mutex
	clients map[string]*Client
	order   []string // порядок рассадки
	phase   domain.Phase
	scores  map[string]int
	moves   map[string]domain.Move // ходы только текущего раунда
	ready   map[string]bool
	token   int // жетон раунда, монотонно растёт
	rounds  int // сыграно раундов в матче
	closed  bool

	createdAt time.Time
	clock     clockwork.Clock

	// тайминги, переопределяются в тестах
	countdownInterval time.Duration
	moveWindow        time.Duration
	resultPause       time.Duration
}

func newRoom(id string, hub *Hub, clock clockwork.Clock) *Room {
	return &Room{
		ID:                id,
		hub:               hub,
		clients:           make(map[string]*Client),
		phase:             domain.PhaseWaiting,
		scores:            make(map[string]int),
		moves:             make(map[string]domain.Move),
		ready:             make(map[string]bool),
		createdAt:         time.Now(),
		clock:             clock,
		countdownInterval: countdownInterval,
		moveWindow:        moveWindow,
		resultPause:       resultPause,
	}
}

// Status возвращает количество посаженных игроков и текущую фазу
func (r *Room) Status() (int, domain.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients), r.phase
}

// seat сажает клиента; false без изменений, если мест нет или комната закрыта.
// Как только комната заполнена, запускается обратный отсчёт первого раунда.
func (r *Room) seat(c *Client) bool {
	r.mu.Lock()
	if r.closed || len(r.clients) >= RoomCapacity {
		r.mu.Unlock()
		return false
	}
	if _, already := r.clients[c.PlayerID]; already {
		r.mu.Unlock()
		return true
	}

	r.clients[c.PlayerID] = c
	r.order = append(r.order, c.PlayerID)
	r.scores[c.PlayerID] = 0

	full := len(r.clients) == RoomCapacity
	if full {
		r.phase = domain.PhaseCountdown
	}
	tok := r.token
	count := len(r.clients)
	targets := r.snapshotLocked()
	r.mu.Unlock()

	broadcastTo(targets, NewMessage(EventPlayerJoined, map[string]any{
		"player_id":     c.PlayerID,
		"players_count": count,
	}))

	if full {
		log.Printf("Room.seat: комната=%s заполнена, старт игры", r.ID)
		broadcastTo(targets, NewMessage(EventGameStart, map[string]any{
			"message": "Game starting! Get ready...",
		}))
		go r.runCountdown(tok)
	}
	return true
}

// tokenValid сообщает, что захваченный жетон всё ещё актуален
func (r *Room) tokenValid(tok int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && tok == r.token
}

// runCountdown шлёт тики 3..1 и открывает окно приёма ходов.
// Жетон захвачен на входе: рестарт или отключение по пути обрывают отсчёт.
func (r *Room) runCountdown(tok int) {
	for i := countdownTicks; i > 0; i-- {
		if !r.tokenValid(tok) {
			log.Printf("Room.runCountdown: комната=%s отсчёт отменён (жетон=%d)", r.ID, tok)
			return
		}
		r.broadcast(NewMessage(EventCountdown, map[string]any{"count": i}))
		<-r.clock.After(r.countdownInterval)
	}
	r.openWindow(tok)
}

// openWindow открывает окно приёма ходов под свежим жетоном и взводит
// таймер принудительной оценки. Вызывается и после отсчёта, и по пути
// рукопожатия готовности; проигравший гонку вход - no-op.
func (r *Room) openWindow(tok int) {
	r.mu.Lock()
	if r.closed || tok != r.token {
		r.mu.Unlock()
		return
	}
	r.token++
	wtok := r.token
	r.phase = domain.PhasePlaying
	r.moves = make(map[string]domain.Move)
	targets := r.snapshotLocked()
	window := r.moveWindow
	r.mu.Unlock()

	log.Printf("Room.openWindow: комната=%s окно открыто, жетон=%d", r.ID, wtok)
	broadcastTo(targets, NewMessage(EventRoundStart, map[string]any{
		"message": "Show your move!",
	}))

	r.clock.AfterFunc(window, func() {
		r.evaluate(wtok, "timeout")
	})
}

// RecordMove записывает ход текущего раунда. Успешен только в открытом окне;
// последняя запись до закрытия окна выигрывает. Когда сходили оба -
// немедленная оценка, не дожидаясь таймера.
func (r *Room) RecordMove(playerID string, move domain.Move) bool {
	r.mu.Lock()
	if r.closed || r.phase != domain.PhasePlaying {
		r.mu.Unlock()
		return false
	}
	if _, seated := r.clients[playerID]; !seated {
		r.mu.Unlock()
		return false
	}

	r.moves[playerID] = move
	both := len(r.moves) == RoomCapacity
	wtok := r.token
	r.mu.Unlock()

	log.Printf("Room.RecordMove: комната=%s игрок=%s ход=%s оба=%v", r.ID, playerID, move, both)

	if both {
		r.evaluate(wtok, "moves")
	}
	return true
}

// MarkReady отмечает готовность игрока. Когда готовы оба, окно открывается
// сразу, без обратного отсчёта.
func (r *Room) MarkReady(playerID string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if _, seated := r.clients[playerID]; !seated {
		r.mu.Unlock()
		return
	}
	r.ready[playerID] = true

	bothReady := len(r.clients) == RoomCapacity && len(r.ready) == RoomCapacity
	if bothReady {
		r.ready = make(map[string]bool)
	}
	tok := r.token
	targets := r.snapshotLocked()
	r.mu.Unlock()

	broadcastTo(targets, NewMessage(EventPlayerReady, map[string]any{
		"player_id": playerID,
	}))

	if bothReady {
		log.Printf("Room.MarkReady: комната=%s оба готовы, открываем окно", r.ID)
		r.openWindow(tok)
	}
}

// evaluate разрешает раунд для жетона окна. Центральный инвариант: на одно
// открытое окно - не больше одной оценки, кто бы из триггеров ни успел первым.
func (r *Room) evaluate(wtok int, trigger string) {
	r.mu.Lock()
	if r.closed || wtok != r.token {
		// ожидаемый исход гонки, не ошибка
		r.mu.Unlock()
		return
	}
	// продвигаем жетон до любой другой работы: второй триггер становится no-op
	r.token++
	ctok := r.token
	r.phase = domain.PhaseEvaluating
	r.rounds++

	p1, p2 := r.order[0], r.order[1]
	m1, ok1 := r.moves[p1]
	if !ok1 {
		m1 = domain.MoveNone
	}
	m2, ok2 := r.moves[p2]
	if !ok2 {
		m2 = domain.MoveNone
	}

	winner := game.Winner(p1, p2, m1, m2)
	if winner != "" {
		r.scores[winner]++
	}

	moves := map[string]string{p1: string(m1), p2: string(m2)}
	scores := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		scores[id] = s
	}
	r.moves = make(map[string]domain.Move)

	maxScore, _ := game.MaxScore(r.scores)
	done := maxScore >= game.WinThreshold

	targets := r.snapshotLocked()
	pause := r.resultPause
	r.mu.Unlock()

	metrics.RoundsEvaluated.WithLabelValues(trigger).Inc()
	log.Printf("Room.evaluate: комната=%s жетон=%d триггер=%s победитель=%q счёт=%v",
		r.ID, wtok, trigger, winner, scores)

	outcome := "win"
	if winner == "" {
		outcome = "draw"
	}
	broadcastTo(targets, NewMessage(EventRoundResult, map[string]any{
		"moves":   moves,
		"winner":  winner,
		"outcome": outcome,
		"scores":  scores,
	}))

	// пауза перед следующей фазой; рестарт или отключение делают её немой
	go func() {
		<-r.clock.After(pause)
		if !r.tokenValid(ctok) {
			return
		}
		if done {
			r.finish()
			return
		}

		r.mu.Lock()
		if r.closed || ctok != r.token {
			r.mu.Unlock()
			return
		}
		r.phase = domain.PhaseCountdown
		next := r.snapshotLocked()
		r.mu.Unlock()

		broadcastTo(next, NewMessage(EventNextRound, map[string]any{
			"message": "Get ready for next round!",
		}))
		r.runCountdown(ctok)
	}()
}

// finish завершает матч: порог достигнут. При равных максимальных счетах
// победитель не назначается произвольно - матч явно помечается как ничейный.
func (r *Room) finish() {
	r.mu.Lock()
	if r.closed || r.phase == domain.PhaseEnded {
		r.mu.Unlock()
		return
	}
	r.phase = domain.PhaseEnded

	_, leaders := game.MaxScore(r.scores)
	winner := ""
	tied := len(leaders) > 1
	if !tied && len(leaders) == 1 {
		winner = leaders[0]
	}

	scores := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		scores[id] = s
	}
	rounds := r.rounds
	var p1, p2 string
	if len(r.order) >= 2 {
		p1, p2 = r.order[0], r.order[1]
	}
	targets := r.snapshotLocked()
	r.mu.Unlock()

	metrics.MatchesFinished.Inc()
	log.Printf("Room.finish: комната=%s победитель=%q ничья=%v счёт=%v", r.ID, winner, tied, scores)

	broadcastTo(targets, NewMessage(EventGameEnd, map[string]any{
		"winner":       winner,
		"winners":      leaders,
		"tied":         tied,
		"final_scores": scores,
	}))

	r.saveResult(p1, p2, winner, scores, rounds)
}

// saveResult пишет историю матча, если репозиторий настроен; сбой не фатален
func (r *Room) saveResult(p1, p2, winner string, scores map[string]int, rounds int) {
	if r.hub == nil || r.hub.matchRepo == nil || p1 == "" || p2 == "" {
		return
	}

	rec := &domain.MatchRecord{
		RoomID:     r.ID,
		PlayerAID:  p1,
		PlayerBID:  p2,
		Scores:     scores,
		Rounds:     rounds,
		FinishedAt: time.Now(),
	}
	if winner != "" {
		rec.WinnerID = &winner
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.hub.matchRepo.Create(ctx, rec); err != nil {
			log.Printf("Room.saveResult: запись истории не удалась: %v", err)
		}
	}()
}

// Restart сбрасывает счёт и сразу входит в обратный отсчёт.
// Продвижение жетона гасит любое открытое окно и висящие таймеры.
func (r *Room) Restart(playerID string) {
	r.mu.Lock()
	if r.closed || len(r.clients) < RoomCapacity {
		r.mu.Unlock()
		return
	}
	if _, seated := r.clients[playerID]; !seated {
		r.mu.Unlock()
		return
	}

	r.token++
	tok := r.token
	for id := range r.scores {
		r.scores[id] = 0
	}
	r.moves = make(map[string]domain.Move)
	r.ready = make(map[string]bool)
	r.rounds = 0
	r.phase = domain.PhaseCountdown
	targets := r.snapshotLocked()
	r.mu.Unlock()

	log.Printf("Room.Restart: комната=%s рестарт от игрока=%s", r.ID, playerID)
	broadcastTo(targets, NewMessage(EventGameRestarted, map[string]any{
		"message": "Game restarted! Get ready...",
	}))

	go r.runCountdown(tok)
}

// participantLeft рвёт комнату после отключения посаженного игрока:
// оставшийся уведомляется ровно один раз, таймеры гаснут, реестр чистится.
func (r *Room) participantLeft(playerID string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.token++ // любые отложенные срабатывания по старым жетонам - no-op

	delete(r.clients, playerID)
	remaining := r.snapshotLocked()
	count := len(r.clients)
	r.mu.Unlock()

	log.Printf("Room.participantLeft: комната=%s игрок=%s вышел, осталось=%d", r.ID, playerID, count)

	broadcastTo(remaining, NewMessage(EventPlayerLeft, map[string]any{
		"player_id":     playerID,
		"players_count": count,
	}))

	if r.hub != nil {
		r.hub.removeRoom(r.ID)
	}
}

// RelayFrame пересылает сырой кадр второму игроку независимо от фазы
func (r *Room) RelayFrame(senderID, frame string) {
	r.mu.Lock()
	targets := make([]*Client, 0, len(r.clients))
	for id, c := range r.clients {
		if id != senderID {
			targets = append(targets, c)
		}
	}
	r.mu.Unlock()

	broadcastTo(targets, NewMessage(EventOpponentFrame, map[string]any{
		"frame":     frame,
		"player_id": senderID,
	}))
}

// snapshotLocked - срез участников под блокировкой; рассылка идёт по срезу,
// поэтому конкурентный detach не ломает итерацию
func (r *Room) snapshotLocked() []*Client {
	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

// broadcast - рассылка всем текущим участникам комнаты
func (r *Room) broadcast(msg Message) {
	r.mu.Lock()
	targets := r.snapshotLocked()
	r.mu.Unlock()
	broadcastTo(targets, msg)
}

// broadcastTo доставляет событие каждому адресату; сбой одного получателя
// не прерывает доставку остальным
func broadcastTo(targets []*Client, msg Message) {
	for _, c := range targets {
		if c != nil {
			c.deliver(msg)
		}
	}
}
