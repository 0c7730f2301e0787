package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New("indexer", WithFailureThreshold(3))

	assert.False(t, b.RecordFailure())
	assert.False(t, b.RecordFailure())
	assert.False(t, b.IsOpen())

	assert.True(t, b.RecordFailure(), "third failure should trip the circuit")
	assert.True(t, b.IsOpen())

	// Further failures do not re-report the transition.
	assert.False(t, b.RecordFailure())
}

func TestBreakerClosesAfterSuccesses(t *testing.T) {
	b := New("indexer", WithFailureThreshold(1), WithSuccessThreshold(2))

	assert.True(t, b.RecordFailure())
	assert.True(t, b.IsOpen())

	assert.False(t, b.RecordSuccess())
	assert.True(t, b.RecordSuccess(), "second success should close the circuit")
	assert.False(t, b.IsOpen())
}

func TestFailureResetsSuccessStreak(t *testing.T) {
	b := New("indexer", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.RecordSuccess())
	assert.True(t, b.IsOpen())
}

func TestDefaults(t *testing.T) {
	b := New("x")
	assert.Equal(t, "x", b.Name())
	assert.Equal(t, StateClosed, b.state)

	for i := 0; i < 4; i++ {
		assert.False(t, b.RecordFailure())
	}
	assert.True(t, b.RecordFailure(), "default threshold is 5")
}
