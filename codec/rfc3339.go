package codec

import (
	"time"

	rosetta "github.com/bartekchlebek/Rosetta"
)

// TimeRFC3339 returns a Converter between RFC3339 strings and time.Time.
// Encoding normalizes to UTC.
func TimeRFC3339() rosetta.Converter[time.Time] {
	return rosetta.Via("TimeRFC3339", rosetta.String, parseRFC3339,
		func(t time.Time) (string, error) { return formatRFC3339Canonical(t), nil })
}

// TimeLayout returns a Converter for times written with layout, in loc.
// A nil loc means UTC.
func TimeLayout(layout string, loc *time.Location) rosetta.Converter[time.Time] {
	if loc == nil {
		loc = time.UTC
	}
	return rosetta.Via("Time("+layout+")", rosetta.String,
		func(s string) (time.Time, error) { return time.ParseInLocation(layout, s, loc) },
		func(t time.Time) (string, error) { return t.In(loc).Format(layout), nil })
}

// UnixSeconds returns a Converter between JSON integers and time.Time.
func UnixSeconds() rosetta.Converter[time.Time] {
	return rosetta.Via("UnixSeconds", rosetta.Int64,
		func(n int64) (time.Time, error) { return time.Unix(n, 0).UTC(), nil },
		func(t time.Time) (int64, error) { return t.Unix(), nil })
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
