package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value  string
		want   Duration
		months float64
		human  string
	}{
		{"P1Y", Duration{Years: 1}, 12, "1 year"},
		{"P2Y6M", Duration{Years: 2, Months: 6}, 30, "2 years"},
		{"P1M", Duration{Months: 1}, 1, "1 month"},
		{"P3W", Duration{Weeks: 3}, 0.7, "21 days"},
		{"P10D", Duration{Days: 10}, 10.0 / 30, "10 days"},
		{"PT5H", Duration{Hours: 5}, 0, "5 hours"},
		{"P1DT12H", Duration{Days: 1, Hours: 12}, 1.0 / 30, "2 days"},
		{"P0.5Y", Duration{Years: 0.5}, 6, "6 months"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			d, err := ParseDuration(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.InDelta(t, tt.months, d.TotalMonths(), 0.01)
			assert.Equal(t, tt.human, d.Humanize())
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, value := range []string{"", "P", "PT", "1Y", "P1X", "P1DT", "two weeks"} {
		_, err := ParseDuration(value)

		var durErr *DurationError
		assert.True(t, errors.As(err, &durErr), value)
	}
}
