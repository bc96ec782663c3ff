package intercept

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agentsh/execlog/internal/capture"
)

// State is the process-wide interception state: the one-time environment
// snapshot and the armed flag derived from it.
//
// Initialize and Finalize are the only mutations and serialize on a
// mutex. Armed and Environment read the published snapshot without
// locking, which is safe at interception rate because the snapshot is
// written once and swapped in atomically.
type State struct {
	mu     sync.Mutex
	done   bool
	snap   atomic.Pointer[capture.Environment]
	logger *slog.Logger
}

// NewState returns an uninitialized State that logs through slog.Default.
func NewState() *State {
	return &State{logger: slog.Default()}
}

// SetLogger replaces the diagnostics logger. Call it before Initialize.
func (s *State) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Initialize takes the one-time environment snapshot through lookup (nil
// means os.LookupEnv) and arms the engine when the snapshot is complete.
// Only the first call snapshots; later calls return the settled armed
// state unchanged. An incomplete snapshot leaves the engine disarmed for
// the life of the State and logs what was missing, but whatever was
// captured still propagates to children.
func (s *State) Initialize(lookup func(string) (string, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return s.Armed()
	}
	s.done = true

	env := capture.Snapshot(lookup)
	s.snap.Store(&env)
	if !env.Complete() {
		s.logger.Warn("interception disarmed, environment capture incomplete",
			"missing", strings.Join(env.Missing(), ","))
	}
	return env.Complete()
}

// Finalize drops the snapshot and disarms. Any call ordering is safe,
// including finalizing a State that never initialized or never armed;
// a later Initialize will not re-arm.
func (s *State) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.snap.Store(&capture.Environment{})
}

// Armed reports whether intercepted calls are recorded.
func (s *State) Armed() bool {
	if env := s.snap.Load(); env != nil {
		return env.Complete()
	}
	return false
}

// Environment returns the published snapshot, or an empty one when
// Initialize has not run.
func (s *State) Environment() capture.Environment {
	if env := s.snap.Load(); env != nil {
		return *env
	}
	return capture.Environment{}
}
