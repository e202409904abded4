package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/koscakluka/astra/core/flows"
)

type workerRun func(context.Context) error

func panicSafeNamedWorker(name string, run func(context.Context) error) workerRun {
	return func(ctx context.Context) (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%s worker panicked: %v", name, recovered)
			}
		}()

		if err = run(ctx); err != nil {
			return fmt.Errorf("%s worker failed: %w", name, err)
		}

		return nil
	}
}

// goWorker runs f on its own goroutine bound to the run's context and hands
// the outcome to onDone. Close waits for every worker started this way.
func (s *Session) goWorker(name string, run *flows.Run, f func(context.Context) error, onDone func(error)) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		err := panicSafeNamedWorker(name, f)(run.Context())
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.DebugContext(run.Context(), "worker ended with error",
				"worker", name, "flow", run.FlowName(), "generation", run.Generation(), "err", err)
		}
		if onDone != nil {
			onDone(err)
		}
	}()
}
