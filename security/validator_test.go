package security

import (
	"fmt"
	"secure-bridge/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func participants(n int, lastSeen time.Time) map[string]domain.Participant {
	res := make(map[string]domain.Participant, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%d", i)
		res[id] = domain.Participant{ID: id, LastSeen: lastSeen}
	}
	return res
}

func TestValidate(t *testing.T) {
	now := time.Now()
	cfg := domain.BridgeConfig{MaxConnections: 3, Timeout: time.Second}

	tests := []struct {
		name         string
		participants map[string]domain.Participant
		want         domain.SecurityStatus
	}{
		{"Empty hub", nil, domain.SECURE},
		{"Fresh participants", participants(3, now), domain.SECURE},
		{"Idle but within twice the timeout", participants(1, now.Add(-2*time.Second)), domain.SECURE},
		{"Idle beyond twice the timeout", participants(1, now.Add(-2*time.Second-time.Millisecond)), domain.WARNING},
		{"Over capacity", participants(4, now), domain.ERROR},
		{"Over capacity wins over staleness", participants(4, now.Add(-time.Hour)), domain.ERROR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Validate(cfg, tt.participants, now))
		})
	}
}
