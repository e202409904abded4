package events

import "github.com/koscakluka/astra/core/interaction"

const (
	// KindProactiveTaskProposed identifies a shown task card.
	KindProactiveTaskProposed Kind = "proactive_task.proposed"
	// KindProactiveTaskResolved identifies an approved or dismissed task.
	KindProactiveTaskResolved Kind = "proactive_task.resolved"
)

// ProactiveTaskProposed carries the task now shown to the user.
type ProactiveTaskProposed struct {
	Base
	Task interaction.ProactiveTask
}

// NewProactiveTaskProposed creates a proactive task proposed event.
func NewProactiveTaskProposed(task interaction.ProactiveTask, opts ...Option) ProactiveTaskProposed {
	return ProactiveTaskProposed{Base: newBase(KindProactiveTaskProposed, opts), Task: task}
}

// ProactiveTaskResolved carries the discarded task and how it was resolved.
type ProactiveTaskResolved struct {
	Base
	Task     interaction.ProactiveTask
	Approved bool
}

// NewProactiveTaskResolved creates a proactive task resolved event.
func NewProactiveTaskResolved(task interaction.ProactiveTask, approved bool, opts ...Option) ProactiveTaskResolved {
	return ProactiveTaskResolved{Base: newBase(KindProactiveTaskResolved, opts), Task: task, Approved: approved}
}
