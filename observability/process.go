// Package observability exposes facts about the running process for status reports.
package observability

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStartTime returns when the current process was created,
// so uptime reflects the process rather than a single hub.
func ProcessStartTime() (time.Time, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return time.Time{}, err
	}
	createdMs, err := p.CreateTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(createdMs), nil
}
