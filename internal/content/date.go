package content

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Date is a calendar date or timestamp as written in content front matter.
type Date struct {
	time.Time
}

// ParseDate accepts "2006-01-02" or RFC 3339.
func ParseDate(value string) (Date, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	return Date{t}, nil
}

// NewDate wraps t.
func NewDate(t time.Time) *Date {
	return &Date{t}
}

func (d Date) String() string {
	if d.Equal(d.Truncate(24 * time.Hour)) {
		return d.Format(dateLayout)
	}
	return d.Format(time.RFC3339)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// dateOf returns the time behind d, reporting false for nil.
func dateOf(d *Date) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return d.Time, true
}
