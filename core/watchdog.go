package orchestration

import "github.com/koscakluka/astra/core/flows"

// armWatchdog (re)starts the inactivity timer. Any pending timer is
// superseded.
//
// Must be called with s.mu held.
func (s *Session) armWatchdog() {
	run := s.watchdog.Start(s.baseContext)
	run.AfterFunc(s.timings.WatchdogTimeout, func() { s.onInactivity(run) })
}

func (s *Session) onInactivity(run *flows.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() {
		return
	}

	switch s.phase.(type) {
	case Listening, Processing:
	default:
		return
	}

	if !s.config.PassiveListening {
		logger.DebugContext(s.baseContext, "inactivity timeout ignored outside passive listening",
			"state", string(s.phase.OrbState()))
		return
	}

	s.transition(Standby{}, "inactivity timeout")
}
