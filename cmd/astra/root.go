package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	orchestration "github.com/koscakluka/astra/core"
	"github.com/koscakluka/astra/core/scenario"
	"github.com/koscakluka/astra/internal/config"
)

type rootOptions struct {
	EnvFile string
	flags   *pflag.FlagSet
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "astra",
		Short:        "Astra voice assistant prototype",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.EnvFile, "env", "e", ".env", "Env file path")
	flags.StringP("wake-word", "w", "", "Wake word for passive listening (env "+config.EnvWakeWord+")")
	flags.Bool("passive", false, "Enable passive listening (env "+config.EnvPassiveListening+")")
	flags.StringP("scenario", "s", "", "Scenario YAML file (env "+config.EnvScenario+")")
	flags.String("log-file", "", "Log file for interactive runs (env "+config.EnvLogFile+")")
	flags.StringP("log", "l", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	opts.flags = flags

	run := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.AddCommand(run, newSimulateCommand(opts), newSchemaCommand())
	return cmd
}

// resolve loads the environment configuration and applies the flags that were
// set explicitly on top of it.
func (o *rootOptions) resolve() (config.Config, error) {
	cfg, err := config.Load(o.EnvFile)
	if err != nil {
		return config.Config{}, err
	}

	if o.flags.Changed("wake-word") {
		cfg.WakeWord, _ = o.flags.GetString("wake-word")
	}
	if o.flags.Changed("passive") {
		cfg.PassiveListening, _ = o.flags.GetBool("passive")
	}
	if o.flags.Changed("scenario") {
		cfg.ScenarioPath, _ = o.flags.GetString("scenario")
	}
	if o.flags.Changed("log-file") {
		cfg.LogFile, _ = o.flags.GetString("log-file")
	}
	if o.flags.Changed("log") {
		value, _ := o.flags.GetString("log")
		level, err := config.ParseLevel(value)
		if err != nil {
			return config.Config{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func loadScenario(cfg config.Config) (scenario.Scenario, error) {
	if cfg.ScenarioPath == "" {
		return scenario.Default(), nil
	}

	s, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("failed to load scenario: %w", err)
	}
	slog.Info("Loaded scenario", "name", s.Name, "path", cfg.ScenarioPath)
	return s, nil
}

func sessionOptions(cfg config.Config, s scenario.Scenario, handlers ...orchestration.EventHandler) []orchestration.SessionOption {
	opts := []orchestration.SessionOption{
		orchestration.WithScenario(s),
		orchestration.WithConfig(cfg.Interaction()),
	}
	for _, handler := range handlers {
		opts = append(opts, orchestration.WithEventHandler(handler))
	}
	return opts
}
