package domain

import "time"

type SecurityStatus string

const (
	SECURE  SecurityStatus = "SECURE"
	WARNING SecurityStatus = "WARNING"
	ERROR   SecurityStatus = "ERROR"
)

// Status is a point-in-time snapshot of the hub.
type Status struct {
	IsRunning      bool           `json:"isRunning"`
	Channels       int            `json:"channels"`
	Participants   int            `json:"participants"`
	Uptime         time.Duration  `json:"uptime"`
	SecurityStatus SecurityStatus `json:"securityStatus"`
}
