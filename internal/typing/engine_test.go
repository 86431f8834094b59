package typing

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordingInjector captures every injected unit for assertions.
type recordingInjector struct {
	mu    sync.Mutex
	units []string

	failAt  int // fail the n-th injection (1-based), 0 = never
	failErr error
}

func (f *recordingInjector) inject(unit string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAt > 0 && len(f.units)+1 == f.failAt {
		return f.failErr
	}
	f.units = append(f.units, unit)
	return nil
}

func (f *recordingInjector) Char(c rune) error { return f.inject(string(c)) }

func (f *recordingInjector) Text(s string) error { return f.inject(s) }

func (f *recordingInjector) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.units)
}

func (f *recordingInjector) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.units...)
}

// newTestEngine builds an engine with a deterministic random source.
func newTestEngine(inj Injector, cb Callbacks) *Engine {
	e := New(inj, cb)
	e.rng = rand.New(rand.NewSource(1))
	return e
}

// fastPolicy keeps unit pauses at the 10ms floor so tests stay quick.
func fastPolicy() TimingPolicy {
	return TimingPolicy{
		BaseDelay:   time.Millisecond,
		Variability: 0,
		WordPause:   time.Millisecond,
	}
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("job did not finish in time")
	}
}

// TestCharacterModeTypesEveryRune verifies that character mode injects
// exactly one unit per rune of the trimmed text, repeated the requested
// number of times.
func TestCharacterModeTypesEveryRune(t *testing.T) {
	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{})

	h, err := e.Start(Request{
		Job:    Job{Text: "  hello, world \n", Repeats: 2, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	if got := h.State(); got != StateCompleted {
		t.Fatalf("expected state completed, got %v", got)
	}

	trimmed := "hello, world"
	wantCount := len(trimmed) * 2
	if got := inj.count(); got != wantCount {
		t.Errorf("expected %d injections, got %d", wantCount, got)
	}
	if joined := strings.Join(inj.snapshot(), ""); joined != trimmed+trimmed {
		t.Errorf("unexpected injected text %q", joined)
	}

	typed, total := h.Progress()
	if typed != total || total != int64(wantCount) {
		t.Errorf("expected progress %d/%d, got %d/%d", wantCount, wantCount, typed, total)
	}
}

// TestWordModeUnitsAndSpaces verifies word-mode unit splitting: each word
// carries one trailing space except the last, and the forced final emit
// lands progress exactly on the total even when the source text has runs
// of whitespace.
func TestWordModeUnitsAndSpaces(t *testing.T) {
	var progressMu sync.Mutex
	var lastTyped, lastTotal int64

	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{
		OnProgress: func(typed, total int64) {
			progressMu.Lock()
			lastTyped, lastTotal = typed, total
			progressMu.Unlock()
		},
	})

	text := "alpha beta  gamma"
	h, err := e.Start(Request{
		Job:    Job{Text: text, Repeats: 1, Mode: ModeWord},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	want := []string{"alpha ", "beta ", "gamma"}
	got := inj.snapshot()
	if len(got) != len(want) {
		t.Fatalf("expected %d units, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unit %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// 17 runes of trimmed source text, including the double space.
	wantTotal := int64(len([]rune(text)))
	typed, total := h.Progress()
	if total != wantTotal {
		t.Errorf("expected total %d, got %d", wantTotal, total)
	}
	if typed != total {
		t.Errorf("expected forced final progress %d, got %d", total, typed)
	}

	progressMu.Lock()
	defer progressMu.Unlock()
	if lastTyped != wantTotal || lastTotal != wantTotal {
		t.Errorf("expected final emit %d/%d, got %d/%d", wantTotal, wantTotal, lastTyped, lastTotal)
	}
}

// TestStopRetainsProgress verifies that a user stop lands before the next
// unit, keeps the typed counter, and injects nothing afterwards.
func TestStopRetainsProgress(t *testing.T) {
	inj := &recordingInjector{}
	var e *Engine
	e = newTestEngine(inj, Callbacks{
		OnProgress: func(typed, total int64) {
			if typed == 5 {
				e.Stop()
			}
		},
	})

	h, err := e.Start(Request{
		Job:    Job{Text: strings.Repeat("x", 40), Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	if got := h.State(); got != StateStopped {
		t.Fatalf("expected state stopped, got %v", got)
	}
	if got := h.Reason(); got != ReasonUser {
		t.Errorf("expected reason user, got %v", got)
	}
	if got := inj.count(); got != 5 {
		t.Errorf("expected 5 injections, got %d", got)
	}

	typed, _ := h.Progress()
	if typed != 5 {
		t.Errorf("expected typed 5, got %d", typed)
	}

	time.Sleep(100 * time.Millisecond)
	if got := inj.count(); got != 5 {
		t.Errorf("injections continued after stop: %d", got)
	}
}

// TestPauseResumeBoundary verifies that pause is observed at a unit
// boundary, that nothing is injected while paused, and that resuming
// neither duplicates nor skips a unit.
func TestPauseResumeBoundary(t *testing.T) {
	paused := make(chan struct{}, 1)

	inj := &recordingInjector{}
	var e *Engine
	e = newTestEngine(inj, Callbacks{
		OnProgress: func(typed, total int64) {
			if typed == 3 {
				e.Pause()
			}
		},
		OnState: func(s State) {
			if s == StatePaused {
				select {
				case paused <- struct{}{}:
				default:
				}
			}
		},
	})

	text := strings.Repeat("a", 30)
	h, err := e.Start(Request{
		Job:    Job{Text: text, Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-paused:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never reached paused state")
	}

	before := inj.count()
	if before != 3 {
		t.Fatalf("expected pause after 3 units, got %d", before)
	}

	time.Sleep(250 * time.Millisecond)
	if got := inj.count(); got != before {
		t.Fatalf("injected %d units while paused", got-before)
	}

	e.Resume()
	waitDone(t, h)

	if got := h.State(); got != StateCompleted {
		t.Fatalf("expected state completed, got %v", got)
	}
	if joined := strings.Join(inj.snapshot(), ""); joined != text {
		t.Errorf("resume duplicated or skipped units: %q", joined)
	}
}

// TestRepeatProgressBoundaries verifies the exact per-unit progress
// sequence for a short repeated job, including the forced final emit.
func TestRepeatProgressBoundaries(t *testing.T) {
	var mu sync.Mutex
	var seen []int64

	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{
		OnProgress: func(typed, total int64) {
			mu.Lock()
			seen = append(seen, typed)
			mu.Unlock()
		},
	})

	h, err := e.Start(Request{
		Job:    Job{Text: "ab", Repeats: 3, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	if got := inj.count(); got != 6 {
		t.Fatalf("expected 6 injections, got %d", got)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []int64{1, 2, 3, 4, 5, 6, 6}
	if len(seen) != len(want) {
		t.Fatalf("expected progress sequence %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected progress sequence %v, got %v", want, seen)
		}
	}
}

// TestStartWhileActive verifies that a second Start is rejected while a
// job is running and that the running job is unaffected by the attempt.
func TestStartWhileActive(t *testing.T) {
	started := make(chan struct{}, 1)

	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{
		OnProgress: func(typed, total int64) {
			if typed == 1 {
				select {
				case started <- struct{}{}:
				default:
				}
			}
		},
	})

	h, err := e.Start(Request{
		Job:    Job{Text: strings.Repeat("y", 200), Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first job never started typing")
	}

	_, err = e.Start(Request{
		Job:    Job{Text: "other", Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if !errors.Is(err, ErrJobActive) {
		t.Fatalf("expected ErrJobActive, got %v", err)
	}

	before := inj.count()
	time.Sleep(100 * time.Millisecond)
	if got := inj.count(); got <= before {
		t.Errorf("running job stalled after rejected start: %d -> %d", before, got)
	}

	e.Stop()
	waitDone(t, h)
	if got := h.Reason(); got != ReasonUser {
		t.Errorf("expected reason user, got %v", got)
	}
}

// TestInjectionFailureFailsJob verifies that an injector error fails the
// job immediately, carries the cause and stops all further injections.
func TestInjectionFailureFailsJob(t *testing.T) {
	cause := errors.New("device rejected event")
	failed := make(chan error, 1)

	inj := &recordingInjector{failAt: 3, failErr: cause}
	e := newTestEngine(inj, Callbacks{
		OnFailed: func(err error) {
			select {
			case failed <- err:
			default:
			}
		},
	})

	h, err := e.Start(Request{
		Job:    Job{Text: "abcdef", Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	if got := h.State(); got != StateFailed {
		t.Fatalf("expected state failed, got %v", got)
	}
	if !errors.Is(h.Err(), cause) {
		t.Errorf("expected Err to wrap the cause, got %v", h.Err())
	}

	select {
	case err := <-failed:
		if !errors.Is(err, cause) {
			t.Errorf("OnFailed got %v, expected wrapped cause", err)
		}
	default:
		t.Error("OnFailed was never called")
	}

	if got := inj.count(); got != 2 {
		t.Errorf("expected 2 successful injections, got %d", got)
	}
	typed, _ := h.Progress()
	if typed != 2 {
		t.Errorf("expected typed 2, got %d", typed)
	}
}

// TestWatchdogStopsJob verifies that the runtime limit stops a long job
// with ReasonWatchdog and without marking it failed.
func TestWatchdogStopsJob(t *testing.T) {
	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{})

	h, err := e.Start(Request{
		Job:      Job{Text: strings.Repeat("z", 300), Repeats: 1, Mode: ModeCharacter},
		Policy:   fastPolicy(),
		Watchdog: 120 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, h)

	if got := h.State(); got != StateStopped {
		t.Fatalf("expected state stopped, got %v", got)
	}
	if got := h.Reason(); got != ReasonWatchdog {
		t.Errorf("expected reason watchdog, got %v", got)
	}
	if got := h.Err(); got != nil {
		t.Errorf("watchdog stop must not set an error, got %v", got)
	}

	count := inj.count()
	if count == 0 || count >= 300 {
		t.Errorf("expected a partial injection count, got %d", count)
	}
	time.Sleep(100 * time.Millisecond)
	if got := inj.count(); got != count {
		t.Errorf("injections continued after watchdog stop: %d -> %d", count, got)
	}
}

// TestEmergencyStopDuringCountdown verifies that an emergency stop
// cancels the countdown before a single unit is injected.
func TestEmergencyStopDuringCountdown(t *testing.T) {
	ticking := make(chan struct{}, 1)

	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{
		OnCountdown: func(remaining int) {
			select {
			case ticking <- struct{}{}:
			default:
			}
		},
	})

	h, err := e.Start(Request{
		Job:       Job{Text: "never typed", Repeats: 1, Mode: ModeCharacter},
		Policy:    fastPolicy(),
		Countdown: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got := h.State(); got != StateCountingDown {
		t.Fatalf("expected state counting_down, got %v", got)
	}

	select {
	case <-ticking:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown never ticked")
	}

	e.EmergencyStop()
	waitDone(t, h)

	if got := h.State(); got != StateStopped {
		t.Fatalf("expected state stopped, got %v", got)
	}
	if got := h.Reason(); got != ReasonEmergency {
		t.Errorf("expected reason emergency, got %v", got)
	}
	if got := inj.count(); got != 0 {
		t.Errorf("expected zero injections, got %d", got)
	}
}

// TestStartValidation verifies the synchronous validation errors.
func TestStartValidation(t *testing.T) {
	e := newTestEngine(&recordingInjector{}, Callbacks{})

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "empty text",
			req:  Request{Job: Job{Text: "   \n\t ", Repeats: 1}, Policy: fastPolicy()},
			want: ErrEmptyText,
		},
		{
			name: "zero repeats",
			req:  Request{Job: Job{Text: "hi", Repeats: 0}, Policy: fastPolicy()},
			want: ErrInvalidRepeat,
		},
		{
			name: "zero base delay",
			req: Request{
				Job:    Job{Text: "hi", Repeats: 1},
				Policy: TimingPolicy{BaseDelay: 0, WordPause: time.Millisecond},
			},
			want: ErrInvalidPolicy,
		},
		{
			name: "unknown mode",
			req: Request{
				Job:    Job{Text: "hi", Repeats: 1, Mode: Mode("sentence")},
				Policy: fastPolicy(),
			},
			want: ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Start(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestControlsWithoutJob verifies that controls are harmless no-ops
// before any job has been started.
func TestControlsWithoutJob(t *testing.T) {
	e := newTestEngine(&recordingInjector{}, Callbacks{})

	e.Pause()
	e.Resume()
	e.TogglePause()
	e.Stop()
	e.EmergencyStop()

	if got := e.State(); got != StateIdle {
		t.Errorf("expected state idle, got %v", got)
	}
	typed, total := e.Progress()
	if typed != 0 || total != 0 {
		t.Errorf("expected 0/0 progress, got %d/%d", typed, total)
	}
	if got := e.Reason(); got != ReasonNone {
		t.Errorf("expected reason none, got %v", got)
	}
	if got := e.Err(); got != nil {
		t.Errorf("expected nil error, got %v", got)
	}
}

// TestSequentialJobs verifies that the engine accepts a new job after the
// previous one finished and resets the progress counters.
func TestSequentialJobs(t *testing.T) {
	inj := &recordingInjector{}
	e := newTestEngine(inj, Callbacks{})

	first, err := e.Start(Request{
		Job:    Job{Text: "one", Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	waitDone(t, first)

	second, err := e.Start(Request{
		Job:    Job{Text: "second", Repeats: 1, Mode: ModeCharacter},
		Policy: fastPolicy(),
	})
	if err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	typed, total := second.Progress()
	if total != 6 {
		t.Errorf("expected fresh total 6, got %d", total)
	}
	if typed > 6 {
		t.Errorf("typed counter leaked from previous job: %d", typed)
	}

	waitDone(t, second)
	if got := inj.count(); got != len("one")+len("second") {
		t.Errorf("expected %d injections across jobs, got %d", len("one")+len("second"), got)
	}
}
