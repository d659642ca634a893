package lifecycle

import (
	"fmt"
	"sync"

	"media-inspector/internal/apperr"
	"media-inspector/internal/logging"
	"media-inspector/internal/metrics"
)

// Subsystem is a native dependency that must be brought up before the
// introspection operations can use it.
type Subsystem interface {
	Name() string
	Start() error
	Stop()
}

// State is the lifecycle state of a Manager.
type State int32

const (
	// Uninitialized means Initialize has not completed.
	Uninitialized State = iota
	// Initialized means every subsystem has been given its one start attempt.
	Initialized
	// Shutdown means started subsystems have been stopped.
	Shutdown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Shutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Manager starts a fixed set of subsystems at most once and stops the ones
// that started at most once.
type Manager struct {
	subsystems []Subsystem

	initOnce sync.Once
	stopOnce sync.Once

	mu      sync.RWMutex
	state   State
	started []Subsystem
	failed  map[string]error
}

// NewManager creates a Manager for subsystems, started in the given order.
func NewManager(subsystems ...Subsystem) *Manager {
	return &Manager{
		subsystems: subsystems,
		failed:     make(map[string]error),
	}
}

// Initialize starts every subsystem. Only the first call does any work;
// concurrent callers block until it finishes. A subsystem that fails to
// start is logged and skipped, leaving dependent operations to fail on their
// own. Initialize after Shutdown is a no-op.
func (m *Manager) Initialize() {
	m.initOnce.Do(func() {
		if m.State() == Shutdown {
			logging.Warn("Initialize called after Shutdown, ignoring")
			return
		}
		for _, s := range m.subsystems {
			m.start(s)
		}

		m.mu.Lock()
		if m.state == Uninitialized {
			m.state = Initialized
		}
		started, failed := len(m.started), len(m.failed)
		m.mu.Unlock()

		if failed > 0 {
			logging.Warn("Subsystems initialized in degraded mode: %d started, %d failed", started, failed)
		} else {
			logging.Info("Subsystems initialized: %d started", started)
		}
	})
}

func (m *Manager) start(s Subsystem) {
	name := s.Name()
	err := safeStart(s)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Shutdown {
		// Shutdown raced ahead; undo so nothing is left running.
		if err == nil {
			s.Stop()
		}
		return
	}

	if err != nil {
		err = apperr.New("initialize", name, apperr.ErrInitialization, err)
		m.failed[name] = err
		logging.Error("Subsystem %s failed to start: %v", name, err)
		metrics.SubsystemStartsTotal.WithLabelValues(name, metrics.StatusError).Inc()
		metrics.SubsystemUp.WithLabelValues(name).Set(0)
		return
	}

	m.started = append(m.started, s)
	logging.Debug("Subsystem %s started", name)
	metrics.SubsystemStartsTotal.WithLabelValues(name, metrics.StatusSuccess).Inc()
	metrics.SubsystemUp.WithLabelValues(name).Set(1)
}

// safeStart converts a panicking Start into an error.
func safeStart(s Subsystem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during start: %v", r)
		}
	}()
	return s.Start()
}

// Shutdown stops started subsystems in reverse start order. Only the first
// call does any work.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		started := m.started
		m.started = nil
		m.state = Shutdown
		m.mu.Unlock()

		for i := len(started) - 1; i >= 0; i-- {
			name := started[i].Name()
			safeStop(started[i])
			metrics.SubsystemUp.WithLabelValues(name).Set(0)
			logging.Debug("Subsystem %s stopped", name)
		}
	})
}

func safeStop(s Subsystem) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Subsystem %s panicked during stop: %v", s.Name(), r)
		}
	}()
	s.Stop()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Started reports whether the named subsystem is currently running.
func (m *Manager) Started(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.started {
		if s.Name() == name {
			return true
		}
	}
	return false
}

// Err returns the start error recorded for the named subsystem, if any.
func (m *Manager) Err(name string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failed[name]
}
