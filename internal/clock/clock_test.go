package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(start)

	assert.True(t, mock.Now().Equal(start))

	mock.Advance(time.Hour)
	assert.True(t, mock.Now().Equal(start.Add(time.Hour)))

	later := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	mock.Set(later)
	assert.True(t, mock.Now().Equal(later))
	assert.Equal(t, 12*time.Hour, mock.Since(later.Add(-12*time.Hour)))
}

func TestRealClock(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	now := c.Now()
	assert.False(t, now.Before(before))
	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}
