package scheduler

import (
	"fmt"

	"github.com/kilianp07/libscan/core/model"
)

// SignupPhase is the state of the signup lifecycle.
type SignupPhase int

const (
	SignupIdle SignupPhase = iota
	SignupInProgress
	SignupComplete
)

func (p SignupPhase) String() string {
	switch p {
	case SignupIdle:
		return "idle"
	case SignupInProgress:
		return "in_progress"
	case SignupComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SignupProcess is the library currently signing up.
type SignupProcess struct {
	Library  *model.Library
	StartDay int
}

// Signup tracks the single signup slot. At most one process is live.
type Signup struct {
	current *SignupProcess
}

// Phase reports the lifecycle state as seen on day.
func (s *Signup) Phase(day int) SignupPhase {
	if s.current == nil {
		return SignupIdle
	}
	if day-s.current.StartDay >= s.current.Library.SignupDays {
		return SignupComplete
	}
	return SignupInProgress
}

// Idle reports whether a new signup may begin.
func (s *Signup) Idle() bool { return s.current == nil }

// Current returns the live process, if any.
func (s *Signup) Current() *SignupProcess { return s.current }

// Begin starts signing up l on day. It fails while another process is
// live.
func (s *Signup) Begin(l *model.Library, day int) error {
	if s.current != nil {
		return fmt.Errorf("library %d is already signing up since day %d", s.current.Library.ID, s.current.StartDay)
	}
	s.current = &SignupProcess{Library: l, StartDay: day}
	return nil
}

// Complete returns the library whose signup finished by day and resets the
// slot to idle. The second result is false if nothing completed.
func (s *Signup) Complete(day int) (*SignupProcess, bool) {
	if s.Phase(day) != SignupComplete {
		return nil, false
	}
	p := s.current
	s.current = nil
	return p, true
}
