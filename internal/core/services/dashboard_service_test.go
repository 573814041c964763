package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay_UsesLocalMidnight(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2025, time.March, 15, 23, 30, 0, 0, ist)

	got := startOfDay(late)

	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, ist), got)
	// Truncate(24h) would land on the previous evening here.
	assert.NotEqual(t, late.Truncate(24*time.Hour), got)
}

func TestStartOfMonth(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	mid := time.Date(2025, time.March, 15, 12, 0, 0, 0, ist)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, ist), startOfMonth(mid))
}
