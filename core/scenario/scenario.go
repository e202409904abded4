// Package scenario describes the scripted interaction that stands in for a
// real speech-to-text provider and search backend.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/koscakluka/astra/core/interaction"
)

// Duration is a time.Duration written as a Go duration string ("750ms").
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
		Description: "Go duration string, e.g. 750ms or 2s",
	}
}

type Scenario struct {
	Name       string   `yaml:"name,omitempty" jsonschema:"description=Human readable name of the scenario"`
	Greeting   string   `yaml:"greeting,omitempty" jsonschema:"description=Assistant turn seeded into the conversation at start"`
	Transcript string   `yaml:"transcript" validate:"required" jsonschema:"required,description=Text revealed by the simulated speech recognition"`
	Response   string   `yaml:"response" validate:"required" jsonschema:"required,description=Assistant answer appended when the search completes"`
	Stages     []Stage  `yaml:"stages" validate:"required,min=1,dive" jsonschema:"required,minItems=1,description=Search stages shown in order while processing"`
	Artifact   Artifact `yaml:"artifact" jsonschema:"required,description=Data artifact produced by the search"`
	Task       *Task    `yaml:"task,omitempty" jsonschema:"description=Proactive task proposed after start"`
	Timings    Timings  `yaml:"timings" jsonschema:"description=Delays driving the simulation"`
}

type Stage struct {
	Label    string   `yaml:"label" validate:"required" jsonschema:"required"`
	Duration Duration `yaml:"duration" validate:"gt=0" jsonschema:"required"`
}

type Artifact struct {
	Source     string      `yaml:"source" validate:"required" jsonschema:"required"`
	Query      string      `yaml:"query,omitempty" jsonschema:"description=Query label; the spoken text is used when empty"`
	Summary    string      `yaml:"summary,omitempty"`
	DataPoints []DataPoint `yaml:"data_points,omitempty" validate:"dive"`
}

type DataPoint struct {
	Label string `yaml:"label" validate:"required" jsonschema:"required"`
	Value string `yaml:"value"`
}

type Task struct {
	Title       string `yaml:"title" validate:"required" jsonschema:"required"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty" validate:"omitempty,oneof=meeting data reminder" jsonschema:"enum=meeting,enum=data,enum=reminder"`
	DisplayTime string `yaml:"display_time,omitempty"`
}

type Timings struct {
	RevealInterval  Duration `yaml:"reveal_interval" validate:"gt=0"`
	WatchdogTimeout Duration `yaml:"watchdog_timeout" validate:"gt=0"`
	SpeakingHold    Duration `yaml:"speaking_hold" validate:"gte=0"`
	ProactiveDelay  Duration `yaml:"proactive_delay" validate:"gte=0"`
	SearchLatency   Duration `yaml:"search_latency" validate:"gte=0"`
	SearchTimeout   Duration `yaml:"search_timeout" validate:"gt=0"`
}

// Default is the TechCorp earnings walkthrough.
func Default() Scenario {
	return Scenario{
		Name:       "techcorp-q3",
		Greeting:   "Systems online. Good evening, sir. I'm ready for your commands.",
		Transcript: "Search the latest Q3 earnings for TechCorp and create a summary table.",
		Response:   "Scanning external databases... I've found the Q3 report. Compiling dataset now.",
		Stages: []Stage{
			{Label: "SEARCHING", Duration: Duration(700 * time.Millisecond)},
			{Label: "QUERYING", Duration: Duration(700 * time.Millisecond)},
			{Label: "AGGREGATING", Duration: Duration(700 * time.Millisecond)},
		},
		Artifact: Artifact{
			Source:  "SEC EDGAR DATABASE",
			Query:   "TechCorp Q3 Earnings",
			Summary: "Revenue up 15% YoY. Cloud division growth accelerated to 32%.",
			DataPoints: []DataPoint{
				{Label: "Revenue", Value: "$45.2B"},
				{Label: "Net Income", Value: "$12.4B"},
				{Label: "EPS", Value: "$3.45"},
				{Label: "YoY Growth", Value: "+15.2%"},
			},
		},
		Task: &Task{
			Title:       "Market Analysis Required",
			Description: "Competitor Q3 earnings report released. Shall I compile a comparison dataset?",
			Category:    string(interaction.TaskCategoryData),
			DisplayTime: "JUST NOW",
		},
		Timings: Timings{
			RevealInterval:  Duration(45 * time.Millisecond),
			WatchdogTimeout: Duration(10 * time.Second),
			SpeakingHold:    Duration(2 * time.Second),
			ProactiveDelay:  Duration(3 * time.Second),
			SearchTimeout:   Duration(5 * time.Second),
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

// Parse decodes a YAML scenario on top of Default, so a file only needs the
// fields it changes.
func Parse(data []byte) (Scenario, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ProactiveTask builds a fresh task card from the scenario, or nil if the
// scenario has none.
func (s Scenario) ProactiveTask() *interaction.ProactiveTask {
	if s.Task == nil {
		return nil
	}

	return &interaction.ProactiveTask{
		ID:          uuid.NewString(),
		Title:       s.Task.Title,
		Description: s.Task.Description,
		Category:    interaction.TaskCategory(s.Task.Category),
		DisplayTime: s.Task.DisplayTime,
	}
}
