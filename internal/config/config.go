// Package config loads the gameplay configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/soccer/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of the YAML document.
type Config struct {
	Log      log.Config `json:"log" yaml:"log"`
	Gameplay Gameplay   `json:"gameplay" yaml:"gameplay"`
}

// Gameplay holds the per-robot and per-tick constants.
type Gameplay struct {
	// RosterSize is the number of robots per team, PoseHistory the number of
	// poses each robot keeps.
	RosterSize  int           `json:"roster_size" yaml:"roster_size"`
	PoseHistory int           `json:"pose_history" yaml:"pose_history"`
	TickRate    time.Duration `json:"tick_rate" yaml:"tick_rate"`

	// Obstacle radii in meters.
	RobotRadius      float64 `json:"robot_radius" yaml:"robot_radius"`
	ApproachRadius   float64 `json:"approach_radius" yaml:"approach_radius"`
	AvoidBallRadius  float64 `json:"avoid_ball_radius" yaml:"avoid_ball_radius"`
	RestartClearance float64 `json:"restart_clearance" yaml:"restart_clearance"`

	// Field geometry in meters. Both defense areas are obstacles, except our own
	// for the robot holding GoalieRole. A zero depth or width disables them.
	FieldLength  float64 `json:"field_length" yaml:"field_length"`
	DefenseDepth float64 `json:"defense_depth" yaml:"defense_depth"`
	DefenseWidth float64 `json:"defense_width" yaml:"defense_width"`
	GoalieRole   string  `json:"goalie_role" yaml:"goalie_role"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: log.Config{Level: "info", Encoding: "console"},
		Gameplay: Gameplay{
			RosterSize:       6,
			PoseHistory:      60,
			TickRate:         time.Second / 60,
			RobotRadius:      0.09,
			ApproachRadius:   0.03,
			AvoidBallRadius:  0.5,
			RestartClearance: 0.5,
			FieldLength:      9,
			DefenseDepth:     1,
			DefenseWidth:     2,
			GoalieRole:       "goalie",
		},
	}
}

// Load decodes YAML from r on top of Default and validates the result.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the YAML file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (c Config) Validate() error {
	return c.Gameplay.Validate()
}

func (g Gameplay) Validate() error {
	if g.RosterSize < 1 {
		return fmt.Errorf("%w: roster_size must be positive, got %d", ErrInvalidConfig, g.RosterSize)
	}
	if g.PoseHistory < 1 {
		return fmt.Errorf("%w: pose_history must be positive, got %d", ErrInvalidConfig, g.PoseHistory)
	}
	if g.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %s", ErrInvalidConfig, g.TickRate)
	}
	sizes := map[string]float64{
		"robot_radius":      g.RobotRadius,
		"approach_radius":   g.ApproachRadius,
		"avoid_ball_radius": g.AvoidBallRadius,
		"restart_clearance": g.RestartClearance,
		"defense_depth":     g.DefenseDepth,
		"defense_width":     g.DefenseWidth,
	}
	for name, r := range sizes {
		if r < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, name, r)
		}
	}
	if g.FieldLength <= 0 {
		return fmt.Errorf("%w: field_length must be positive, got %g", ErrInvalidConfig, g.FieldLength)
	}
	if g.DefenseDepth > g.FieldLength/2 {
		return fmt.Errorf("%w: defense_depth %g exceeds half the field", ErrInvalidConfig, g.DefenseDepth)
	}
	if g.ApproachRadius > g.RobotRadius {
		return fmt.Errorf("%w: approach_radius %g exceeds robot_radius %g", ErrInvalidConfig, g.ApproachRadius, g.RobotRadius)
	}
	return nil
}
