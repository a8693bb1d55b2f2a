package course

import (
	"math"
	"os"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the physics settings of a course and the robot defaults.
// Every field may be omitted from the YAML file; see DefaultConfig.
type Config struct {
	Gravity            vector.Vector2 `yaml:"gravity"`             // m/s², default (0, -9.8)
	TimeStep           float64        `yaml:"time_step"`           // s, default 1/60
	VelocityIterations int            `yaml:"velocity_iterations"` // default 20
	PositionIterations int            `yaml:"position_iterations"` // default 30

	// applied on top of DefaultRobotParams for every spawned robot
	Robot RobotParamsOverrides `yaml:"robot"`

	// shown on the intro panel
	Version string `yaml:"-"`
	Port    int    `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:            vector.MakeVector2(0, -9.8),
		TimeStep:           1.0 / 60.0,
		VelocityIterations: 20,
		PositionIterations: 30,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not read config file %s", path)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "could not parse config file %s", path)
	}

	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	if !cfg.Gravity.IsFinite() {
		return errors.Wrap(ErrInvalidParameter, "gravity must be finite")
	}

	if math.IsNaN(cfg.TimeStep) || math.IsInf(cfg.TimeStep, 0) || cfg.TimeStep <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "time_step must be positive (got %g)", cfg.TimeStep)
	}

	if cfg.VelocityIterations <= 0 || cfg.PositionIterations <= 0 {
		return errors.Wrap(ErrInvalidParameter, "solver iterations must be positive")
	}

	if err := DefaultRobotParams().Merge(cfg.Robot).Validate(); err != nil {
		return errors.Wrap(err, "robot defaults")
	}

	return nil
}
