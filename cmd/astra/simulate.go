package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	orchestration "github.com/koscakluka/astra/core"
	"github.com/koscakluka/astra/core/events"
	"github.com/koscakluka/astra/core/interaction"
	"github.com/koscakluka/astra/core/scenario"
	"github.com/koscakluka/astra/internal/logging"
)

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	var timeout time.Duration
	var approveTask bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scripted interaction headless and log every event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			logging.SetupConsole(cfg.LogLevel)

			s, err := loadScenario(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return simulate(ctx, s, sessionOptions(cfg, s, logging.EventLogger(slog.Default())), approveTask)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Abort the simulation after this long")
	cmd.Flags().BoolVar(&approveTask, "approve-task", false, "Wait for the proactive task and approve it instead of pressing the mic")
	return cmd
}

// simulate plays one full interaction: it opens the mic, waits for the
// scripted utterance, submits it and waits for the response.
func simulate(ctx context.Context, s scenario.Scenario, opts []orchestration.SessionOption, approveTask bool) error {
	feed := make(chan events.Event, 256)
	done := make(chan struct{})
	opts = append(opts, orchestration.WithEventHandler(func(event events.Event) {
		select {
		case feed <- event:
		case <-done:
		}
	}))

	session := orchestration.NewSession(opts...)
	defer func() {
		close(done)
		session.Close()
		session.Wait()
	}()
	session.Start(ctx)

	if approveTask {
		if _, err := waitFor(ctx, feed, func(e events.Event) bool { return e.Kind() == events.KindProactiveTaskProposed }); err != nil {
			return fmt.Errorf("no proactive task was proposed: %w", err)
		}
		if err := session.ApproveTask(); err != nil {
			return err
		}
	} else {
		session.ToggleMic()
	}

	transcript := strings.TrimSpace(s.Transcript)
	if _, err := waitFor(ctx, feed, func(e events.Event) bool {
		updated, ok := e.(events.TranscriptUpdated)
		return ok && strings.TrimSpace(updated.Transcript) == transcript
	}); err != nil {
		return fmt.Errorf("utterance never completed: %w", err)
	}

	session.ToggleMic()

	outcome, err := waitFor(ctx, feed, func(e events.Event) bool {
		if changed, ok := e.(events.OrbStateChanged); ok {
			return changed.To == interaction.OrbStateSpeaking || changed.To == interaction.OrbStateStandby
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("no response: %w", err)
	}
	if outcome.(events.OrbStateChanged).To == interaction.OrbStateStandby {
		return errors.New("interaction failed")
	}

	if session.Config().PassiveListening {
		if _, err := waitFor(ctx, feed, func(e events.Event) bool {
			changed, ok := e.(events.OrbStateChanged)
			return ok && changed.To == interaction.OrbStateStandby
		}); err != nil {
			return fmt.Errorf("session did not return to standby: %w", err)
		}
	}

	slog.Info("Simulation finished", "turns", len(session.Conversation()))
	return nil
}

func waitFor(ctx context.Context, feed <-chan events.Event, match func(events.Event) bool) (events.Event, error) {
	for {
		select {
		case event := <-feed:
			if match(event) {
				return event, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
