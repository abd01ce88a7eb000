package service

import (
	"sync"
	"time"

	"wordsheet/internal/domain"

	"go.uber.org/zap"
)

// DefaultSaveDelay is the quiet period before a snapshot is written
const DefaultSaveDelay = 500 * time.Millisecond

// SaveFunc persists one snapshot
type SaveFunc func(rows []domain.WordEntry) error

// Autosaver debounces snapshot writes. Each Schedule restarts the delay and
// replaces the pending snapshot, so only the last one in a burst is written.
type Autosaver struct {
	delay   time.Duration
	save    SaveFunc
	onSaved func(time.Time)
	logger  *zap.Logger

	// writeMu is held for the whole of a save so writes never overlap and
	// a stale one cannot land after a newer one
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending []domain.WordEntry
	dirty   bool
	gen     uint64
	closed  bool
}

// NewAutosaver creates an autosaver. onSaved may be nil.
func NewAutosaver(delay time.Duration, save SaveFunc, onSaved func(time.Time), logger *zap.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Autosaver{
		delay:   delay,
		save:    save,
		onSaved: onSaved,
		logger:  logger,
	}
}

// Schedule queues rows to be written after the delay
func (a *Autosaver) Schedule(rows []domain.WordEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}

	a.gen++
	gen := a.gen
	a.pending = rows
	a.dirty = true
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

func (a *Autosaver) fire(gen uint64) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if a.closed || gen != a.gen || !a.dirty {
		a.mu.Unlock()
		return
	}
	rows := a.pending
	a.pending = nil
	a.dirty = false
	a.timer = nil
	a.mu.Unlock()

	a.write(rows)
}

func (a *Autosaver) write(rows []domain.WordEntry) {
	if err := a.save(rows); err != nil {
		a.logger.Error("Failed to save sheet", zap.Error(err))
		return
	}
	a.logger.Debug("Sheet saved", zap.Int("rows", len(rows)))
	if a.onSaved != nil {
		a.onSaved(time.Now())
	}
}

// Flush writes the pending snapshot now, if there is one. It waits for a
// save already in progress.
func (a *Autosaver) Flush() {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	rows, dirty := a.pending, a.dirty
	a.pending = nil
	a.dirty = false
	a.mu.Unlock()

	if dirty {
		a.write(rows)
	}
}

// Close cancels any pending write and waits for a save in progress to
// finish. Later calls to Schedule are ignored.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.dirty = false
	a.closed = true
	a.mu.Unlock()

	a.writeMu.Lock()
	a.writeMu.Unlock()
}
