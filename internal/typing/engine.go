package typing

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// Injector превращает единицу текста в синтетические нажатия клавиш.
// Движку достаточно двух операций, платформенная реализация живёт в
// internal/input.
type Injector interface {
	Char(c rune) error
	Text(s string) error
}

// Callbacks уведомления о ходе набора. Nil-поля пропускаются.
// Вызовы приходят из горутины воркера: подписчик сам переносит
// обработку в свой поток.
type Callbacks struct {
	OnState     func(State)
	OnCountdown func(remaining int)
	OnProgress  func(typed, total int64)
	OnCompleted func()
	OnStopped   func(StopReason)
	OnFailed    func(err error)
}

// Request параметры запуска задания.
type Request struct {
	Job       Job
	Policy    TimingPolicy
	Countdown time.Duration // 0 - начать сразу
	Watchdog  time.Duration // 0 - без ограничения времени
}

const (
	// pausePoll период опроса флага паузы воркером.
	pausePoll = 100 * time.Millisecond

	// joinTimeout максимальное ожидание выхода предыдущего воркера.
	joinTimeout = 2 * time.Second
)

// Handle запущенное задание. Все флаги (пауза, отмена, счётчик)
// живут на задании, а не на движке.
type Handle struct {
	job    Job
	policy TimingPolicy

	typed  atomic.Int64
	total  int64
	paused atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	state  State
	reason StopReason
	err    error
}

// State возвращает текущее состояние задания.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Progress возвращает набрано/всего в единицах задания.
func (h *Handle) Progress() (typed, total int64) {
	return h.typed.Load(), h.total
}

// Reason возвращает причину остановки (ReasonNone, пока задание идёт).
func (h *Handle) Reason() StopReason {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reason
}

// Err возвращает ошибку ввода, приведшую к состоянию Failed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done закрывается после выхода воркера и финальных уведомлений.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Pause просит воркер встать перед следующей единицей. Единица в
// полёте не прерывается. Во время отсчёта и вне набора ничего не
// делает.
func (h *Handle) Pause() {
	switch h.State() {
	case StateRunning, StatePaused:
		h.paused.Store(true)
	}
}

// Resume снимает паузу.
func (h *Handle) Resume() {
	switch h.State() {
	case StateRunning, StatePaused:
		h.paused.Store(false)
	}
}

// TogglePause переключает паузу.
func (h *Handle) TogglePause() {
	switch h.State() {
	case StateRunning, StatePaused:
		h.paused.Store(!h.paused.Load())
	}
}

// Stop останавливает задание по команде пользователя.
// Счётчик набранного сохраняется.
func (h *Handle) Stop() {
	h.requestStop(ReasonUser)
}

// EmergencyStop аварийная остановка. Действует и во время отсчёта.
func (h *Handle) EmergencyStop() {
	h.requestStop(ReasonEmergency)
}

// requestStop переводит задание в Stopped и отменяет контекст воркера.
// Первая причина побеждает, повторные вызовы игнорируются.
func (h *Handle) requestStop(reason StopReason) bool {
	h.mu.Lock()
	switch h.state {
	case StateCountingDown, StateRunning, StatePaused:
	default:
		h.mu.Unlock()
		return false
	}
	h.state = StateStopped
	h.reason = reason
	h.mu.Unlock()

	h.cancel()
	return true
}

func (h *Handle) cancelled() bool {
	return h.ctx.Err() != nil
}

// active сообщает, занято ли задание (отсчёт, набор или пауза).
func (h *Handle) active() bool {
	switch h.State() {
	case StateCountingDown, StateRunning, StatePaused:
		return true
	}
	return false
}

// swapState переводит задание из from в to. Возвращает false, если
// состояние уже изменилось (например, пришла остановка).
func (h *Handle) swapState(from, to State) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != from {
		return false
	}
	h.state = to
	return true
}

// complete помечает задание выполненным, если его не успели остановить.
func (h *Handle) complete() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateStopped {
		return false
	}
	h.state = StateCompleted
	return true
}

// fail помечает задание проваленным из-за ошибки ввода.
func (h *Handle) fail(err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateStopped {
		return false
	}
	h.state = StateFailed
	h.err = err
	return true
}

// Engine исполняет задания набора. Одновременно активно не более
// одного задания; движок переживает любое их число подряд.
type Engine struct {
	injector  Injector
	callbacks Callbacks
	rng       *rand.Rand

	mu      sync.RWMutex
	current *Handle
}

// New создаёт движок поверх инжектора нажатий.
func New(injector Injector, callbacks Callbacks) *Engine {
	return &Engine{
		injector:  injector,
		callbacks: callbacks,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start проверяет запрос и запускает воркер задания.
// Перед приёмом нового задания дожидается выхода предыдущего воркера,
// но не дольше joinTimeout.
func (e *Engine) Start(req Request) (*Handle, error) {
	text := strings.TrimSpace(req.Job.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if req.Job.Repeats < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRepeat, req.Job.Repeats)
	}
	if err := req.Policy.Validate(); err != nil {
		return nil, err
	}

	mode := req.Job.Mode
	if mode == "" {
		mode = ModeCharacter
	}
	switch mode {
	case ModeCharacter, ModeWord:
	default:
		return nil, fmt.Errorf("%w: режим набора %q", ErrInvalidPolicy, mode)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if prev := e.current; prev != nil {
		if prev.active() {
			return nil, ErrJobActive
		}
		select {
		case <-prev.done:
		case <-time.After(joinTimeout):
			return nil, ErrJobActive
		}
	}

	job := Job{Text: text, Repeats: req.Job.Repeats, Mode: mode}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		job:    job,
		policy: req.Policy,
		total:  job.TotalUnits(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  StateRunning,
	}
	if req.Countdown > 0 {
		h.state = StateCountingDown
	}
	e.current = h

	go e.run(h, req.Countdown, req.Watchdog)
	return h, nil
}

// handle возвращает текущее задание (nil, если ещё не стартовали).
func (e *Engine) handle() *Handle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// State возвращает состояние текущего задания, Idle без задания.
func (e *Engine) State() State {
	h := e.handle()
	if h == nil {
		return StateIdle
	}
	return h.State()
}

// Progress возвращает прогресс текущего задания.
func (e *Engine) Progress() (typed, total int64) {
	h := e.handle()
	if h == nil {
		return 0, 0
	}
	return h.Progress()
}

// Reason возвращает причину остановки текущего задания.
func (e *Engine) Reason() StopReason {
	h := e.handle()
	if h == nil {
		return ReasonNone
	}
	return h.Reason()
}

// Err возвращает ошибку текущего задания.
func (e *Engine) Err() error {
	h := e.handle()
	if h == nil {
		return nil
	}
	return h.Err()
}

// Pause ставит текущее задание на паузу.
func (e *Engine) Pause() {
	if h := e.handle(); h != nil {
		h.Pause()
	}
}

// Resume снимает текущее задание с паузы.
func (e *Engine) Resume() {
	if h := e.handle(); h != nil {
		h.Resume()
	}
}

// TogglePause переключает паузу текущего задания.
func (e *Engine) TogglePause() {
	if h := e.handle(); h != nil {
		h.TogglePause()
	}
}

// Stop останавливает текущее задание по команде пользователя.
func (e *Engine) Stop() {
	if h := e.handle(); h != nil {
		h.Stop()
	}
}

// EmergencyStop аварийно останавливает текущее задание.
func (e *Engine) EmergencyStop() {
	if h := e.handle(); h != nil {
		h.EmergencyStop()
	}
}

// run воркер задания: отсчёт, сторожевой таймер, набор, финальные
// уведомления. Единственная горутина, трогающая инжектор.
func (e *Engine) run(h *Handle, countdown, watchdog time.Duration) {
	defer close(h.done)

	if countdown > 0 {
		e.emitState(StateCountingDown)
		if !e.runCountdown(h, countdown) {
			e.finishStopped(h)
			return
		}
		if !h.swapState(StateCountingDown, StateRunning) {
			e.finishStopped(h)
			return
		}
	}
	e.emitState(StateRunning)

	if watchdog > 0 {
		wd := time.AfterFunc(watchdog, func() {
			h.requestStop(ReasonWatchdog)
		})
		defer wd.Stop()
	}

	err := e.typeJob(h)
	switch {
	case err != nil:
		if h.fail(err) {
			e.emitState(StateFailed)
			if e.callbacks.OnFailed != nil {
				e.callbacks.OnFailed(err)
			}
			return
		}
		e.finishStopped(h)
	case h.cancelled():
		e.finishStopped(h)
	default:
		if !h.complete() {
			e.finishStopped(h)
			return
		}
		// Принудительный финальный прогресс: пословный режим может
		// недосчитаться единиц на повторных пробелах исходного текста.
		h.typed.Store(h.total)
		e.emitProgress(h.total, h.total)
		e.emitState(StateCompleted)
		if e.callbacks.OnCompleted != nil {
			e.callbacks.OnCompleted()
		}
	}
}

// runCountdown отсчитывает целые секунды до старта набора.
// Возвращает false, если отсчёт прервали.
func (e *Engine) runCountdown(h *Handle, countdown time.Duration) bool {
	seconds := int((countdown + time.Second - 1) / time.Second)
	for s := seconds; s > 0; s-- {
		if e.callbacks.OnCountdown != nil {
			e.callbacks.OnCountdown(s)
		}
		if !e.sleep(h, time.Second) {
			return false
		}
	}
	return true
}

// typeJob прогоняет текст задания нужное число раз.
func (e *Engine) typeJob(h *Handle) error {
	for r := 0; r < h.job.Repeats; r++ {
		var err error
		switch h.job.Mode {
		case ModeWord:
			err = e.typeWords(h)
		default:
			err = e.typeChars(h)
		}
		if err != nil || h.cancelled() {
			return err
		}
		if r < h.job.Repeats-1 {
			if !e.sleep(h, h.policy.WordPause*3) {
				return nil
			}
		}
	}
	return nil
}

// typeChars набирает текст посимвольно: одна руна - одна единица.
func (e *Engine) typeChars(h *Handle) error {
	for _, c := range h.job.Text {
		if !e.waitReady(h) {
			return nil
		}
		if err := e.injector.Char(c); err != nil {
			return fmt.Errorf("ввод символа %q: %w", c, err)
		}
		h.typed.Add(1)
		e.emitProgress(h.typed.Load(), h.total)
		if !e.sleep(h, charDelay(e.rng, h.policy, c)) {
			return nil
		}
	}
	return nil
}

// typeWords набирает текст пословно: слово с пробелом - одна единица,
// после последнего слова пробел не ставится. Пауза только между
// словами.
func (e *Engine) typeWords(h *Handle) error {
	words := strings.Fields(h.job.Text)
	for i, word := range words {
		if !e.waitReady(h) {
			return nil
		}
		unit := word
		last := i == len(words)-1
		if !last {
			unit += " "
		}
		if err := e.injector.Text(unit); err != nil {
			return fmt.Errorf("ввод слова %q: %w", word, err)
		}
		h.typed.Add(int64(utf8.RuneCountInString(unit)))
		e.emitProgress(h.typed.Load(), h.total)
		if !last {
			if !e.sleep(h, wordDelay(e.rng, h.policy, word)) {
				return nil
			}
		}
	}
	return nil
}

// waitReady пропускает воркер к следующей единице: ждёт снятия паузы,
// опрашивая флаг каждые pausePoll. Возвращает false при отмене.
func (e *Engine) waitReady(h *Handle) bool {
	if h.cancelled() {
		return false
	}
	if !h.paused.Load() {
		return true
	}

	if h.swapState(StateRunning, StatePaused) {
		e.emitState(StatePaused)
	}
	for h.paused.Load() {
		if !e.sleep(h, pausePoll) {
			return false
		}
	}
	if h.swapState(StatePaused, StateRunning) {
		e.emitState(StateRunning)
	}
	return !h.cancelled()
}

// sleep спит с учётом отмены. Возвращает false, если задание отменили.
func (e *Engine) sleep(h *Handle, d time.Duration) bool {
	if d <= 0 {
		return !h.cancelled()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-h.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (e *Engine) finishStopped(h *Handle) {
	reason := h.Reason()
	e.emitState(StateStopped)
	if e.callbacks.OnStopped != nil {
		e.callbacks.OnStopped(reason)
	}
}

func (e *Engine) emitState(s State) {
	if e.callbacks.OnState != nil {
		e.callbacks.OnState(s)
	}
}

func (e *Engine) emitProgress(typed, total int64) {
	if e.callbacks.OnProgress != nil {
		e.callbacks.OnProgress(typed, total)
	}
}
