package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow(t *testing.T) {
	assert.Equal(t, Window{Skip: 0, Limit: 100}, NewWindow(-5, nil))
	assert.Equal(t, Window{Skip: 10, Limit: 20}, NewWindow(10, IntPtr(20)))
	assert.Equal(t, Window{Skip: 0, Limit: MaxLimit}, NewWindow(0, IntPtr(5000)))
	assert.Equal(t, Window{Skip: 3, Limit: 0}, NewWindow(3, IntPtr(0)))
	assert.Equal(t, Window{Skip: 0, Limit: 100}, NewWindow(0, IntPtr(-1)))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%silva%", ContainsPattern("Silva"))
	assert.Equal(t, "%50!%!_off!!%", ContainsPattern("50%_off!"))
}

func TestPreviousMonthRange(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	start, end := PreviousMonthRange(now)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = PreviousMonthRange(time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}
