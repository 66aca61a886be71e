package config

import (
	"errors"
	"fmt"
	"os"

	"hex2048/experiments/metrics"
	"hex2048/game"
	"hex2048/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all run configuration
type Config struct {
	Board      BoardConfig         `yaml:"board"`
	Log        LogConfig           `yaml:"log"`
	Agent      metrics.AgentConfig `yaml:"agent"` // used by auto mode
	Experiment ExperimentConfig    `yaml:"experiment"`
}

// BoardConfig holds board settings
type BoardConfig struct {
	Size int    `yaml:"size"` // cells per hexagon edge
	Goal int    `yaml:"goal"` // exponent of the winning tile
	Seed uint64 `yaml:"seed"` // 0 picks a time based seed
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Events bool   `yaml:"events"` // trace every tile event at debug level
}

// ExperimentConfig holds batch autoplay settings
type ExperimentConfig struct {
	Name      string                `yaml:"name"`
	OutputDir string                `yaml:"output_dir"`
	Games     int                   `yaml:"games"` // per agent
	Agents    []metrics.AgentConfig `yaml:"agents"`
}

var agentKinds = map[string]bool{"random": true, "greedy": true, "mcts": true}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Size: meta.DefaultSize,
			Goal: meta.DefaultGoal,
		},
		Log: LogConfig{
			Level: "info",
		},
		Agent: defaultAgent(1),
		Experiment: ExperimentConfig{
			Name:      "autoplay",
			OutputDir: "results",
			Games:     meta.NumGames,
		},
	}
}

func defaultAgent(id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Kind:       "mcts",
		Evaluation: "blend",
		Goroutines: meta.Goroutines,
		Duration:   meta.Duration,
		Cutoff:     meta.Cutoff,
	}
}

// Load reads configuration from a YAML file. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults for agents listed without budgets
	for i := range cfg.Experiment.Agents {
		fillAgent(&cfg.Experiment.Agents[i], i+1)
	}
	fillAgent(&cfg.Agent, cfg.Agent.ID)

	return cfg, nil
}

func fillAgent(a *metrics.AgentConfig, id int) {
	if a.ID == 0 {
		a.ID = id
	}
	if a.Kind == "" {
		a.Kind = "mcts"
	}
	if a.Evaluation == "" {
		a.Evaluation = "blend"
	}
	if a.Kind != "mcts" {
		return
	}
	if a.Goroutines == 0 {
		a.Goroutines = meta.Goroutines
	}
	if a.Duration == 0 && a.Episodes == 0 {
		a.Episodes = meta.Episodes
	}
	if a.Cutoff == 0 {
		a.Cutoff = meta.Cutoff
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Board.Size < 1 {
		errs = append(errs, fmt.Errorf("board.size must be positive, got %d", c.Board.Size))
	}
	if c.Board.Goal < 1 {
		errs = append(errs, fmt.Errorf("board.goal must be positive, got %d", c.Board.Goal))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := validateAgent("agent", c.Agent); err != nil {
		errs = append(errs, err)
	}
	if c.Experiment.Games < 1 {
		errs = append(errs, fmt.Errorf("experiment.games must be positive, got %d", c.Experiment.Games))
	}
	if c.Experiment.OutputDir == "" {
		errs = append(errs, errors.New("experiment.output_dir is required"))
	}
	ids := map[int]bool{}
	for i, a := range c.Experiment.Agents {
		if err := validateAgent(fmt.Sprintf("experiment.agents[%d]", i), a); err != nil {
			errs = append(errs, err)
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("experiment.agents[%d]: duplicate id %d", i, a.ID))
		}
		ids[a.ID] = true
	}
	return errors.Join(errs...)
}

func validateAgent(field string, a metrics.AgentConfig) error {
	if !agentKinds[a.Kind] {
		return fmt.Errorf("%s.kind: unknown agent %q", field, a.Kind)
	}
	if _, ok := game.Evaluations[a.Evaluation]; !ok {
		return fmt.Errorf("%s.evaluation: unknown heuristic %q", field, a.Evaluation)
	}
	if a.Kind != "mcts" {
		return nil
	}
	if a.Goroutines < 1 {
		return fmt.Errorf("%s.goroutines must be positive, got %d", field, a.Goroutines)
	}
	if a.Duration <= 0 && a.Episodes <= 0 {
		return fmt.Errorf("%s: mcts needs a duration or an episode budget", field)
	}
	if a.Cutoff < 0 {
		return fmt.Errorf("%s.cutoff must not be negative, got %d", field, a.Cutoff)
	}
	return nil
}

// Agents returns the experiment's agents, falling back to the single auto mode agent.
func (c *Config) Agents() []metrics.AgentConfig {
	if len(c.Experiment.Agents) > 0 {
		return c.Experiment.Agents
	}
	return []metrics.AgentConfig{c.Agent}
}
