package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	orchestration "github.com/koscakluka/astra/core"
	"github.com/koscakluka/astra/internal/logging"
	"github.com/koscakluka/astra/internal/tui"
)

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}

	closer, err := logging.SetupFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := loadScenario(cfg)
	if err != nil {
		return err
	}

	bridge := tui.NewEventBridge()
	session := orchestration.NewSession(sessionOptions(cfg, s, bridge.Handle, logging.EventLogger(slog.Default()))...)
	defer func() {
		bridge.Close()
		session.Close()
		session.Wait()
	}()

	ctx := cmd.Context()
	session.Start(ctx)

	program := tea.NewProgram(tui.New(session, bridge), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
