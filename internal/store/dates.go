package store

import (
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date. The field name is
// carried into the validation error for the boundary layer.
func ParseDate(field, value string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return datatypes.Date{}, invalid(field, "invalid date %q for %s, expected YYYY-MM-DD", value, field)
	}
	return datatypes.Date(t), nil
}

// ParseDatePtr treats the empty string as no date.
func ParseDatePtr(field, value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate renders a calendar date back to YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

// FormatDatePtr renders an optional date, empty string when absent.
func FormatDatePtr(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}
