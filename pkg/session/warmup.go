package session

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-chanterelle/pkg/backend"
)

// WarmupState is the lifecycle of one warm-up.
type WarmupState string

const (
	WarmupIdle    WarmupState = "idle"
	WarmupWarming WarmupState = "warming"
	WarmupReady   WarmupState = "ready"
	WarmupError   WarmupState = "error"
)

// WarmupStatus is the last known state of a project's warm-up.
type WarmupStatus struct {
	State     WarmupState `json:"state"`
	Error     string      `json:"error,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Warmer pre-loads a model. backend.Backend satisfies it.
type Warmer interface {
	WarmupModel(ctx context.Context, project string) (*backend.WarmupResult, error)
}

const defaultWarmupFailure = "Failed to warm up model"

// WarmupTracker runs warm-ups in the background and keeps the status of the
// most recently started run per project. A run superseded by a newer one
// settles without touching the status.
type WarmupTracker struct {
	warmer Warmer
	now    func() time.Time

	mu       sync.Mutex
	statuses map[string]WarmupStatus
	runs     map[string]uint64
	wg       sync.WaitGroup
}

// NewWarmupTracker builds a tracker over warmer.
func NewWarmupTracker(warmer Warmer) *WarmupTracker {
	return &WarmupTracker{
		warmer:   warmer,
		now:      time.Now,
		statuses: map[string]WarmupStatus{},
		runs:     map[string]uint64{},
	}
}

// Status returns the status of project, idle when never started.
func (t *WarmupTracker) Status(project string) WarmupStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if status, ok := t.statuses[project]; ok {
		return status
	}
	return WarmupStatus{State: WarmupIdle}
}

// Start launches a warm-up unless one is already running for project. It
// reports whether a new run started. The run uses ctx, so callers pass a
// context that outlives the triggering request.
func (t *WarmupTracker) Start(ctx context.Context, project string) bool {
	t.mu.Lock()
	if t.statuses[project].State == WarmupWarming {
		t.mu.Unlock()
		return false
	}
	t.runs[project]++
	run := t.runs[project]
	t.statuses[project] = WarmupStatus{State: WarmupWarming, UpdatedAt: t.now()}
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		status := t.warm(ctx, project)
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.runs[project] != run {
			return
		}
		status.UpdatedAt = t.now()
		t.statuses[project] = status
	}()
	return true
}

// Wait blocks until every started warm-up has settled.
func (t *WarmupTracker) Wait() {
	t.wg.Wait()
}

func (t *WarmupTracker) warm(ctx context.Context, project string) WarmupStatus {
	res, err := t.warmer.WarmupModel(ctx, project)
	if err != nil {
		return WarmupStatus{State: WarmupError, Error: backend.Message(err)}
	}
	if res == nil || !res.Warmup {
		msg := defaultWarmupFailure
		if res != nil && res.Error != "" {
			msg = res.Error
		}
		return WarmupStatus{State: WarmupError, Error: msg}
	}
	return WarmupStatus{State: WarmupReady}
}
