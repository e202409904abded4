// Package config resolves the command line configuration from an optional
// .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/koscakluka/astra/core/interaction"
)

const (
	EnvWakeWord         = "ASTRA_WAKE_WORD"
	EnvPassiveListening = "ASTRA_PASSIVE_LISTENING"
	EnvScenario         = "ASTRA_SCENARIO"
	EnvLogFile          = "ASTRA_LOG_FILE"
	EnvLogLevel         = "ASTRA_LOG_LEVEL"
)

const DefaultLogFile = "astra.log"

type Config struct {
	WakeWord         string
	PassiveListening bool
	// ScenarioPath is a YAML scenario file; empty runs the built-in scenario.
	ScenarioPath string
	LogFile      string
	LogLevel     slog.Level
}

func Default() Config {
	return Config{
		WakeWord: interaction.DefaultWakeWord,
		LogFile:  DefaultLogFile,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads envFile, if it exists, into the process environment without
// overriding variables that are already set, then resolves the configuration
// from the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv resolves the configuration through lookup, falling back to the
// defaults for unset variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if value, ok := lookup(EnvWakeWord); ok && strings.TrimSpace(value) != "" {
		cfg.WakeWord = strings.TrimSpace(value)
	}

	if value, ok := lookup(EnvPassiveListening); ok && value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvPassiveListening, value, err)
		}
		cfg.PassiveListening = enabled
	}

	if value, ok := lookup(EnvScenario); ok {
		cfg.ScenarioPath = value
	}

	if value, ok := lookup(EnvLogFile); ok && value != "" {
		cfg.LogFile = value
	}

	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		level, err := ParseLevel(value)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func (c Config) Interaction() interaction.Config {
	return interaction.Config{WakeWord: c.WakeWord, PassiveListening: c.PassiveListening}
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func ParseLevel(value string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", value)
	}
	return level, nil
}
