package lotsizing

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SolverConfig holds the settings of a solver run. Costs are part of the instance, not of
// the configuration.
type SolverConfig struct {
	Formulation string        `mapstructure:"formulation" yaml:"formulation"`
	TimeLimit   time.Duration `mapstructure:"time_limit" yaml:"time_limit"`
	MaxNodes    int           `mapstructure:"max_nodes" yaml:"max_nodes"`
	Tolerance   float64       `mapstructure:"tolerance" yaml:"tolerance"`
	LogLevel    int           `mapstructure:"log_level" yaml:"log_level"`
	WriteLP     bool          `mapstructure:"write_lp" yaml:"write_lp"`
	Workers     int           `mapstructure:"workers" yaml:"workers"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Formulation: FORMULATION_STD,
		TimeLimit:   0,
		MaxNodes:    0,
		Tolerance:   1e-6,
		LogLevel:    LOG_INFO,
		WriteLP:     false,
		Workers:     1,
	}
}

// LoadConfig reads defaults, then the optional file at path, then LOTSIZING_* environment
// variables, later sources overriding earlier ones.
func LoadConfig(path string) (SolverConfig, error) {
	def := DefaultSolverConfig()
	v := viper.New()
	v.SetDefault("formulation", def.Formulation)
	v.SetDefault("time_limit", def.TimeLimit)
	v.SetDefault("max_nodes", def.MaxNodes)
	v.SetDefault("tolerance", def.Tolerance)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("write_lp", def.WriteLP)
	v.SetDefault("workers", def.Workers)

	v.SetEnvPrefix("LOTSIZING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return SolverConfig{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg SolverConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SolverConfig{}, errors.Wrap(err, "decoding config")
	}
	cfg.Formulation = strings.ToUpper(cfg.Formulation)
	return cfg, cfg.Validate()
}

func (c SolverConfig) Validate() error {
	if _, ok := Formulations[strings.ToUpper(c.Formulation)]; !ok {
		return errors.Errorf("unknown formulation %q", c.Formulation)
	}
	if c.TimeLimit < 0 {
		return errors.Errorf("time_limit must be >= 0, got %s", c.TimeLimit)
	}
	if c.MaxNodes < 0 {
		return errors.Errorf("max_nodes must be >= 0, got %d", c.MaxNodes)
	}
	if c.Tolerance <= 0 || c.Tolerance >= 0.5 {
		return errors.Errorf("tolerance must be in (0, 0.5), got %g", c.Tolerance)
	}
	if c.LogLevel < LOG_ERROR || c.LogLevel > LOG_SPAM {
		return errors.Errorf("log_level must be between %d and %d, got %d", LOG_ERROR, LOG_SPAM, c.LogLevel)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}
