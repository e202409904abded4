package orchestration

import (
	"github.com/google/uuid"

	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/flows"
	"github.com/koscakluka/astra/core/interaction"
)

func (s *Session) proposeScheduledTask(run *flows.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !run.Current() || s.proactiveTask == nil {
		return
	}
	if task := s.proactiveTask(); task != nil {
		s.showTask(*task)
	}
	s.proactive.Cancel()
}

// ProposeTask shows task as the current proactive suggestion, replacing any
// task already shown.
func (s *Session) ProposeTask(task interaction.ProactiveTask) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.showTask(task)
}

// Must be called with s.mu held.
func (s *Session) showTask(task interaction.ProactiveTask) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.task = &task
	s.emit(events.NewProactiveTaskProposed(task, s.stamp()))
}

// ApproveTask discards the shown task and, from standby, starts listening as
// if the microphone was pressed.
func (s *Session) ApproveTask() error {
	return s.resolveTask(true)
}

// DismissTask discards the shown task.
func (s *Session) DismissTask() error {
	return s.resolveTask(false)
}

func (s *Session) resolveTask(approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.task == nil {
		return ErrNoActiveTask
	}

	task := *s.task
	s.task = nil
	s.emit(events.NewProactiveTaskResolved(task, approved, s.stamp()))

	if _, standby := s.phase.(Standby); approved && standby {
		s.transition(Listening{}, "proactive task approved")
	}
	return nil
}
