package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerSecondRaisesBurstToRate(t *testing.T) {
	l := PerSecond(50, 10)
	assert.Equal(t, 50, l.Rate)
	assert.Equal(t, 50, l.Burst)
	assert.Equal(t, time.Second, l.Period)

	l = PerSecond(5, 20)
	assert.Equal(t, 20, l.Burst)
}
