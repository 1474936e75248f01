package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultScreenIdleTimeout = 30 * time.Minute
	DefaultMaxScreens        = 10000
)

// ScreenLimits bounds the registry. Zero fields take the defaults.
type ScreenLimits struct {
	// IdleTimeout is how long a screen may go untouched before Run drops it.
	IdleTimeout time.Duration
	// MaxScreens caps open screens; opening one more drops the least
	// recently used.
	MaxScreens int
}

func (l ScreenLimits) withDefaults() ScreenLimits {
	if l.IdleTimeout <= 0 {
		l.IdleTimeout = DefaultScreenIdleTimeout
	}
	if l.MaxScreens <= 0 {
		l.MaxScreens = DefaultMaxScreens
	}
	return l
}

type screenEntry struct {
	screen     Screen
	lastAccess time.Time
}

// ScreenManager keeps the screens the app currently has open.
type ScreenManager struct {
	mu       sync.RWMutex
	screens  map[string]*screenEntry
	recorder Recorder
	limits   ScreenLimits
	now      func() time.Time
}

func NewScreenManager(recorder Recorder, limits ScreenLimits) *ScreenManager {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ScreenManager{
		screens:  make(map[string]*screenEntry),
		recorder: recorder,
		limits:   limits.withDefaults(),
		now:      time.Now,
	}
}

// Open registers a screen and returns its id.
func (m *ScreenManager) Open(screen Screen) string {
	id := uuid.NewString()

	m.mu.Lock()
	if len(m.screens) >= m.limits.MaxScreens {
		m.dropOldestLocked()
	}
	m.screens[id] = &screenEntry{screen: screen, lastAccess: m.now()}
	count := len(m.screens)
	m.mu.Unlock()

	m.recorder.SetOpenScreens(count)
	return id
}

// Get returns an open screen and marks it as used.
func (m *ScreenManager) Get(id string) (Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.screens[id]
	if !ok {
		return nil, ErrScreenNotFound
	}
	entry.lastAccess = m.now()
	return entry.screen, nil
}

func (m *ScreenManager) Close(id string) error {
	m.mu.Lock()
	if _, ok := m.screens[id]; !ok {
		m.mu.Unlock()
		return ErrScreenNotFound
	}
	delete(m.screens, id)
	count := len(m.screens)
	m.mu.Unlock()

	m.recorder.SetOpenScreens(count)
	return nil
}

func (m *ScreenManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.screens)
}

// EvictIdle drops every screen not used within the idle timeout and
// returns how many were dropped.
func (m *ScreenManager) EvictIdle() int {
	cutoff := m.now().Add(-m.limits.IdleTimeout)

	m.mu.Lock()
	evicted := 0
	for id, entry := range m.screens {
		if entry.lastAccess.Before(cutoff) {
			delete(m.screens, id)
			evicted++
		}
	}
	count := len(m.screens)
	m.mu.Unlock()

	if evicted > 0 {
		m.recorder.SetOpenScreens(count)
	}
	return evicted
}

// Run evicts idle screens periodically until ctx is done.
func (m *ScreenManager) Run(ctx context.Context, logger *slog.Logger) {
	interval := m.limits.IdleTimeout / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("screen eviction started",
		slog.Duration("idle_timeout", m.limits.IdleTimeout),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(); n > 0 {
				logger.Info("evicted idle screens", slog.Int("count", n), slog.Int("open", m.Len()))
			}
		}
	}
}

func (m *ScreenManager) dropOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, entry := range m.screens {
		if oldestID == "" || entry.lastAccess.Before(oldest) {
			oldestID, oldest = id, entry.lastAccess
		}
	}
	delete(m.screens, oldestID)
}
