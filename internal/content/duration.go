package content

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(
	`^P(?:(\d+(?:\.\d+)?)Y)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)W)?(?:(\d+(?:\.\d+)?)D)?` +
		`(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

const (
	daysPerMonth = 30.0
	daysPerYear  = 365.0
)

// Duration is an ISO 8601 duration such as "P1Y2M" or "P3W".
type Duration struct {
	Years, Months, Weeks, Days, Hours, Minutes, Seconds float64
}

// ParseDuration parses an ISO 8601 duration.
func ParseDuration(value string) (Duration, error) {
	m := durationPattern.FindStringSubmatch(value)
	if m == nil || value == "P" || value[len(value)-1] == 'T' {
		return Duration{}, &DurationError{Value: value}
	}

	parts := make([]float64, len(m)-1)
	for i, raw := range m[1:] {
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Duration{}, &DurationError{Value: value}
		}
		parts[i] = n
	}

	return Duration{
		Years: parts[0], Months: parts[1], Weeks: parts[2], Days: parts[3],
		Hours: parts[4], Minutes: parts[5], Seconds: parts[6],
	}, nil
}

// TotalDays approximates the duration in days.
func (d Duration) TotalDays() float64 {
	return d.Years*daysPerYear + d.Months*daysPerMonth + d.Weeks*7 + d.Days +
		(d.Hours+(d.Minutes+d.Seconds/60)/60)/24
}

// TotalMonths approximates the duration in months.
func (d Duration) TotalMonths() float64 {
	return d.Years*12 + d.Months + (d.Weeks*7+d.Days)/daysPerMonth
}

// Humanize renders the duration in its largest sensible unit ("2 years", "1 month").
func (d Duration) Humanize() string {
	days := d.TotalDays()
	switch {
	case days >= 320:
		return plural(math.Max(1, math.Round(days/daysPerYear)), "year")
	case days >= 26:
		return plural(math.Max(1, math.Round(days/daysPerMonth)), "month")
	case days >= 1:
		return plural(math.Round(days), "day")
	default:
		return plural(math.Max(1, math.Round(days*24)), "hour")
	}
}

func plural(n float64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", int(n), unit)
}
