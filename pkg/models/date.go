package models

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = time.DateOnly

// DateOf truncates t to its calendar day in UTC. All stored dates go through here so that
// range predicates compare like with like.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return DateOf(t), nil
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatOptionalDate renders nil as an empty string.
func FormatOptionalDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}
