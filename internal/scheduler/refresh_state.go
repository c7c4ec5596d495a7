package scheduler

import (
	"sync"
	"time"
)

// RunState is the refresh job lifecycle
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateFailed    RunState = "failed"
)

// ProgressUpdate is one message from a running refresh
type ProgressUpdate struct {
	Processed int
	Total     int
	Updated   int
	Failed    int
	Symbol    string
}

// RunRecord is one finished run in the history ring
type RunRecord struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     RunState  `json:"status"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
}

// StateSnapshot is a read-only copy of the tracker state
type StateSnapshot struct {
	State       RunState    `json:"state"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	Processed   int         `json:"processed"`
	Total       int         `json:"total"`
	Updated     int         `json:"updated"`
	Failed      int         `json:"failed"`
	LastSymbol  string      `json:"last_symbol,omitempty"`
	LastError   string      `json:"last_error,omitempty"`
	RunHistory  []RunRecord `json:"run_history"`
	GeneratedAt time.Time   `json:"generated_at"`
}

const historySize = 10

// RefreshTracker is an explicit state machine for the batch refresh:
// idle -> running -> completed|failed -> running -> ...
// Progress arrives as messages on a channel consumed by a single
// goroutine, so job code never shares mutable counters with readers.
type RefreshTracker struct {
	mu sync.RWMutex

	state      RunState
	startedAt  *time.Time
	processed  int
	total      int
	updated    int
	failed     int
	lastSymbol string
	lastError  string
	history    []RunRecord

	progress chan ProgressUpdate
	done     chan struct{}
}

// NewRefreshTracker creates a tracker in the idle state
func NewRefreshTracker() *RefreshTracker {
	return &RefreshTracker{state: StateIdle}
}

// StartRun transitions to running and returns the progress channel the
// job should send updates on. Returns false when a run is already active.
func (t *RefreshTracker) StartRun(total int) (chan<- ProgressUpdate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		return nil, false
	}

	now := time.Now().UTC()
	t.state = StateRunning
	t.startedAt = &now
	t.processed = 0
	t.total = total
	t.updated = 0
	t.failed = 0
	t.lastSymbol = ""
	t.lastError = ""
	t.progress = make(chan ProgressUpdate, 64)
	t.done = make(chan struct{})

	go t.consume(t.progress, t.done)
	return t.progress, true
}

// consume applies progress messages until the channel closes
func (t *RefreshTracker) consume(progress <-chan ProgressUpdate, done chan<- struct{}) {
	for update := range progress {
		t.mu.Lock()
		t.processed = update.Processed
		t.total = update.Total
		t.updated = update.Updated
		t.failed = update.Failed
		t.lastSymbol = update.Symbol
		t.mu.Unlock()
	}
	close(done)
}

// CompleteRun closes the run as completed
func (t *RefreshTracker) CompleteRun() {
	t.finish(StateCompleted, "")
}

// FailRun closes the run as failed with the given error
func (t *RefreshTracker) FailRun(errMsg string) {
	t.finish(StateFailed, errMsg)
}

func (t *RefreshTracker) finish(state RunState, errMsg string) {
	t.mu.Lock()
	progress := t.progress
	done := t.done
	t.mu.Unlock()

	if progress != nil {
		close(progress)
		<-done // drain remaining updates before reading counters
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = state
	t.lastError = errMsg
	t.progress = nil
	t.done = nil

	record := RunRecord{
		FinishedAt: time.Now().UTC(),
		Status:     state,
		Updated:    t.updated,
		Failed:     t.failed,
		Error:      errMsg,
	}
	if t.startedAt != nil {
		record.StartedAt = *t.startedAt
	}
	t.history = append([]RunRecord{record}, t.history...)
	if len(t.history) > historySize {
		t.history = t.history[:historySize]
	}
}

// Snapshot returns a copy of the current state for the status endpoint
func (t *RefreshTracker) Snapshot() StateSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	history := make([]RunRecord, len(t.history))
	copy(history, t.history)

	return StateSnapshot{
		State:       t.state,
		StartedAt:   t.startedAt,
		Processed:   t.processed,
		Total:       t.total,
		Updated:     t.updated,
		Failed:      t.failed,
		LastSymbol:  t.lastSymbol,
		LastError:   t.lastError,
		RunHistory:  history,
		GeneratedAt: time.Now().UTC(),
	}
}
