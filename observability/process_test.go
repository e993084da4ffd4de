package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessStartTime_InThePast(t *testing.T) {
	req := require.New(t)

	startedAt, err := ProcessStartTime()

	req.NoError(err)
	req.False(startedAt.IsZero())
	req.True(startedAt.Before(time.Now().Add(time.Second)))
}
