// Package security derives the advisory health classification of a hub.
// It is observability only and never evicts anyone.
package security

import (
	"secure-bridge/domain"
	"time"

	"github.com/samber/lo"
)

// Validate classifies the current occupancy:
// ERROR when participants exceed capacity, WARNING when someone has been idle
// for more than twice the timeout (missed between two heartbeats), SECURE otherwise.
func Validate(cfg domain.BridgeConfig, participants map[string]domain.Participant, now time.Time) domain.SecurityStatus {
	if len(participants) > cfg.MaxConnections {
		return domain.ERROR
	}
	stale := lo.CountBy(lo.Values(participants), func(p domain.Participant) bool {
		return p.IdleFor(now) > 2*cfg.Timeout
	})
	if stale > 0 {
		return domain.WARNING
	}
	return domain.SECURE
}
