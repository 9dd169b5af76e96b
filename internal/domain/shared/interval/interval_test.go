package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_RejectsInvertedBounds(t *testing.T) {
	_, err := New(date(2024, 3, 15), date(2024, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(date(2024, 3, 10), date(2024, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(time.Time{}, date(2024, 3, 10))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlaps(t *testing.T) {
	base := Must(date(2024, 3, 10), date(2024, 3, 15))

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Must(date(2024, 3, 10), date(2024, 3, 15)), true},
		{"partial tail", Must(date(2024, 3, 12), date(2024, 3, 18)), true},
		{"contained", Must(date(2024, 3, 11), date(2024, 3, 13)), true},
		{"containing", Must(date(2024, 3, 1), date(2024, 3, 31)), true},
		{"back to back after", Must(date(2024, 3, 15), date(2024, 3, 18)), false},
		{"back to back before", Must(date(2024, 3, 5), date(2024, 3, 10)), false},
		{"disjoint", Must(date(2024, 4, 1), date(2024, 4, 5)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestContainsTime(t *testing.T) {
	iv := Must(date(2024, 3, 10), date(2024, 3, 15))
	assert.True(t, iv.ContainsTime(date(2024, 3, 10)))
	assert.True(t, iv.ContainsTime(date(2024, 3, 14)))
	assert.False(t, iv.ContainsTime(date(2024, 3, 15)))
	assert.False(t, iv.ContainsTime(date(2024, 3, 9)))
}

func TestClip(t *testing.T) {
	iv := Must(date(2024, 3, 10), date(2024, 3, 15))

	clipped, ok := iv.Clip(Must(date(2024, 3, 12), date(2024, 3, 31)))
	require.True(t, ok)
	assert.Equal(t, date(2024, 3, 12), clipped.Start)
	assert.Equal(t, date(2024, 3, 15), clipped.End)

	clipped, ok = iv.Clip(Must(date(2024, 3, 1), date(2024, 3, 31)))
	require.True(t, ok)
	assert.Equal(t, iv, clipped)

	_, ok = iv.Clip(Must(date(2024, 4, 1), date(2024, 4, 5)))
	assert.False(t, ok)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 5, Must(date(2024, 3, 10), date(2024, 3, 15)).Nights())
	assert.Equal(t, 1, Must(date(2024, 3, 10), date(2024, 3, 11)).Nights())
}
