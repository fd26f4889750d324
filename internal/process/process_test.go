package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTop(t *testing.T) {
	snap, err := Top(5)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.LessOrEqual(t, len(snap.Processes), 5)
	assert.GreaterOrEqual(t, snap.Total, len(snap.Processes))

	// Sorted by CPU descending.
	for i := 1; i < len(snap.Processes); i++ {
		assert.GreaterOrEqual(t, snap.Processes[i-1].CPUPercent, snap.Processes[i].CPUPercent)
	}

	for _, p := range snap.Processes {
		assert.NotZero(t, p.PID)
		assert.NotEmpty(t, p.Name)
	}
}

func TestTop_Unlimited(t *testing.T) {
	snap, err := Top(0)
	require.NoError(t, err)
	assert.Equal(t, snap.Total, len(snap.Processes))
}
