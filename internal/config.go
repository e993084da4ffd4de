package internal

import (
	"fmt"
	"secure-bridge/domain"
	"secure-bridge/errors"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	MaxConnections   int           `env:"BRIDGE_MAX_CONNECTIONS,default=10" validate:"gt=0"`
	Timeout          time.Duration `env:"BRIDGE_TIMEOUT,default=30s" validate:"gt=0"`
	RetryAttempts    int           `env:"BRIDGE_RETRY_ATTEMPTS,default=3" validate:"gte=0"`
	EnableEncryption bool          `env:"BRIDGE_ENABLE_ENCRYPTION,default=true"`
	SubscriberBuffer int           `env:"SUBSCRIBER_BUFFER_SIZE,default=256" validate:"gt=0"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"gt=0"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	JournalTTL       time.Duration `env:"JOURNAL_TTL,default=10m" validate:"gte=0"`
	JournalLimit     int           `env:"JOURNAL_LIMIT,default=50" validate:"gt=0"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=5s" validate:"gt=0"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	Colours          bool          `env:"CONSOLE_COLOURS,default=true"`
}

// LoadConfig reads the process environment and validates the result.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return config, nil
}

// Bridge is the immutable hub configuration derived from the environment.
func (c Config) Bridge() domain.BridgeConfig {
	return domain.BridgeConfig{
		MaxConnections:   c.MaxConnections,
		Timeout:          c.Timeout,
		RetryAttempts:    c.RetryAttempts,
		EnableEncryption: c.EnableEncryption,
		SubscriberBuffer: c.SubscriberBuffer,
	}
}
