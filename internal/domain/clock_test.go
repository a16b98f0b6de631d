package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)
}

func TestParseClock_Invalid(t *testing.T) {
	for _, s := range []string{"24:00", "12:60", "-1:00", "noon", ""} {
		_, err := ParseClock(s)
		assert.Error(t, err, "expected error for %q", s)
	}
}

func TestFormatClock_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "07:05", "12:30", "23:59"} {
		assert.Equal(t, s, FormatClock(MustClock(s)))
	}
}

func TestMinutesOfDay(t *testing.T) {
	now := time.Date(2025, 4, 12, 14, 45, 30, 0, time.UTC)
	assert.Equal(t, 14*60+45, MinutesOfDay(now))
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Sensō-ji to Tokyo Skytree is roughly 1.1 km.
	sensoji := Point{Lat: 35.7148, Lng: 139.7967}
	skytree := Point{Lat: 35.7101, Lng: 139.8107}

	d := Haversine(sensoji, skytree)
	assert.InDelta(t, 1370, d, 150)
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 48.8584, Lng: 2.2945}
	assert.Equal(t, 0.0, Haversine(p, p))
}
