package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "ISO with time and zone",
			input:    "2025-07-14T08:30:00Z",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "ISO with time no zone",
			input:    "2025-07-14T08:30:00",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separated with seconds",
			input:    "2025-07-14 08:30:00",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separated without seconds",
			input:    "2025-07-14 08:30",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "bare ISO date",
			input:    "2025-07-14",
			expected: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "HTTP date",
			input:    "Mon, 14 Jul 2025 08:30:00 UTC",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "extra whitespace",
			input:    "  2025-07-14  08:30:00 ",
			expected: time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "empty is zero time",
			input:    "",
			expected: time.Time{},
		},
		{
			name:    "garbage",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "ambiguous slashes rejected",
			input:   "14/07/2025",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateString(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %v, got %v", tc.expected, got)
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start := StartOfMonth(2025, time.July)
	next := NextMonth(2025, time.July)

	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), next)

	// Year rollover.
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), NextMonth(2025, time.December))
}

func TestInMonth(t *testing.T) {
	tests := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{"first instant", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"mid month", time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC), true},
		{"last instant", time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC), true},
		{"next month boundary", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), false},
		{"previous month", time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InMonth(tc.t, 2025, time.July))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	year, month, err := ParsePeriod("2025-07")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.July, month)

	_, _, err = ParsePeriod("July 2025")
	assert.Error(t, err)
}

func TestCompareDates(t *testing.T) {
	earlier := time.Date(2025, 7, 1, 23, 0, 0, 0, time.UTC)
	later := time.Date(2025, 7, 2, 1, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, CompareDates(earlier, later))
	assert.Equal(t, 1, CompareDates(later, earlier))
	assert.Equal(t, 0, CompareDates(earlier, sameDay))
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2025-07-14", ToISODate(time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", ToISODate(time.Time{}))
}
