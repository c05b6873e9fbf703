package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	for _, invalid := range []string{"", "2024-13-01", "2024-02-30", "29/02/2024", "not a date"} {
		_, err := ParseDate(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestDateAddMonthsClampsDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		start    Date
		months   int
		expected Date
	}{
		{
			name:     "jan 31 to february non-leap",
			start:    NewDate(2023, time.January, 31),
			months:   1,
			expected: NewDate(2023, time.February, 28),
		},
		{
			name:     "jan 31 to february leap",
			start:    NewDate(2024, time.January, 31),
			months:   1,
			expected: NewDate(2024, time.February, 29),
		},
		{
			name:     "march 31 to april",
			start:    NewDate(2024, time.March, 31),
			months:   1,
			expected: NewDate(2024, time.April, 30),
		},
		{
			name:     "across year boundary",
			start:    NewDate(2023, time.October, 31),
			months:   4,
			expected: NewDate(2024, time.February, 29),
		},
		{
			name:     "mid-month day unchanged",
			start:    NewDate(2024, time.January, 15),
			months:   13,
			expected: NewDate(2025, time.February, 15),
		},
		{
			name:     "negative step",
			start:    NewDate(2024, time.March, 31),
			months:   -1,
			expected: NewDate(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.AddMonths(tt.months))
		})
	}
}

func TestDateAddYearsClampsLeapDay(t *testing.T) {
	assert.Equal(t, NewDate(2025, time.February, 28), NewDate(2024, time.February, 29).AddYears(1))
	assert.Equal(t, NewDate(2028, time.February, 29), NewDate(2024, time.February, 29).AddYears(4))
}

func TestDateOrderingAndArithmetic(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.March, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, 60, a.DaysUntil(b)) // 2024 is a leap year
	assert.Equal(t, -60, b.DaysUntil(a))
	assert.Equal(t, b, a.AddDays(60))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.July, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-09"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"09.07.2024"`), &decoded))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.Equal(t, 30, DaysInMonth(2024, time.November))
}
