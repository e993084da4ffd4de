package domain

import "time"

const (
	DefaultMaxConnections = 10
	DefaultTimeout        = 30 * time.Second
	DefaultRetryAttempts  = 3
)

// BridgeConfig is supplied once when a hub is built and never changes afterwards.
// RetryAttempts is informational; EnableEncryption only tags outgoing messages.
type BridgeConfig struct {
	MaxConnections   int           `validate:"gt=0"`
	Timeout          time.Duration `validate:"gt=0"`
	RetryAttempts    int           `validate:"gte=0"`
	EnableEncryption bool
	SubscriberBuffer int `validate:"gte=0"`
}

func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		MaxConnections:   DefaultMaxConnections,
		Timeout:          DefaultTimeout,
		RetryAttempts:    DefaultRetryAttempts,
		EnableEncryption: true,
		SubscriberBuffer: 256,
	}
}

// HeartbeatInterval is half the idle timeout so a stale participant is
// evicted at most 1.5 timeouts after its last activity.
func (c BridgeConfig) HeartbeatInterval() time.Duration {
	return c.Timeout / 2
}
