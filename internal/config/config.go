package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	// SourceEmbedded serves calendar data from the dataset shipped with the
	// binary.
	SourceEmbedded = "embedded"
	// SourceRemote fetches calendar data from an xmlcalendar-compatible
	// HTTP endpoint.
	SourceRemote = "remote"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig selects and tunes the exception data source
type CalendarConfig struct {
	Source     string `mapstructure:"source"` // "embedded" or "remote"
	BaseURL    string `mapstructure:"base_url"`
	MinYear    int    `mapstructure:"min_year"`
	MaxYear    int    `mapstructure:"max_year"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from file. A missing config file is not an
// error: defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workcal")
		v.AddConfigPath("/etc/workcal")
	}

	v.SetDefault("calendar.source", SourceEmbedded)
	v.SetDefault("calendar.max_retries", 3)
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch c.Calendar.Source {
	case SourceEmbedded:
	case SourceRemote:
		if c.Calendar.MinYear == 0 || c.Calendar.MaxYear == 0 {
			return errors.New("remote calendar source requires min_year and max_year")
		}
		if c.Calendar.MaxYear < c.Calendar.MinYear {
			return errors.New("calendar max_year must not be before min_year")
		}
	default:
		return fmt.Errorf("unknown calendar source: %q", c.Calendar.Source)
	}

	return nil
}
