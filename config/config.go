package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the settings of the forwarding lambda.
type Config struct {
	Stage          string
	LogLevel       string
	LogFormat      string
	TracingEnabled bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present, which is only expected locally.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("STAGE", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("TRACING_ENABLED", false)

	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Stage:          v.GetString("STAGE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		TracingEnabled: v.GetBool("TRACING_ENABLED"),
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.Errorf("invalid LOG_FORMAT '%s', expected json or text", cfg.LogFormat)
	}

	return cfg, nil
}
