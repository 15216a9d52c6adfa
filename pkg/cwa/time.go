package cwa

import (
	"fmt"
	"strings"
	"time"
)

// Day, hour and minute layout used on every header and valid line.
const DDHHMM = "021504"

// Timezones maps the abbreviations CWSU offices configure to fixed zones.
// Anything not listed here is resolved through the IANA database.
var Timezones = map[string]*time.Location{
	"GMT":  time.FixedZone("GMT", 0),
	"UTC":  time.FixedZone("UTC", 0),
	"AST":  time.FixedZone("AST", -4*60*60),
	"EST":  time.FixedZone("EST", -5*60*60),
	"CST":  time.FixedZone("CST", -6*60*60),
	"MST":  time.FixedZone("MST", -7*60*60),
	"PST":  time.FixedZone("PST", -8*60*60),
	"AKST": time.FixedZone("AKST", -9*60*60),
	"HST":  time.FixedZone("HST", -10*60*60),
	"CHST": time.FixedZone("CHST", 10*60*60),
}

// LoadZone resolves an office time zone setting.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	if loc, ok := Timezones[strings.ToUpper(name)]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("could not load time zone %q: %w", name, err)
	}
	return loc, nil
}

// FormatDDHHMM renders t in UTC as ddHHmm.
func FormatDDHHMM(t time.Time) string {
	return t.UTC().Format(DDHHMM)
}

// ParseDDHHMM places a ddHHmm fragment on the month and year of ref.
// Only the first six characters are read, so trailing "Z" is tolerated.
func ParseDDHHMM(s string, ref time.Time) (time.Time, error) {
	if len(s) < 6 {
		return time.Time{}, fmt.Errorf("ddhhmm %q too short", s)
	}
	t, err := time.Parse(DDHHMM, s[:6])
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse ddhhmm %q: %w", s, err)
	}
	ref = ref.UTC()
	return time.Date(ref.Year(), ref.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// DefaultEnd is the top of the next hour, or the one after when start is past
// the half hour.
func DefaultEnd(start time.Time) time.Time {
	start = start.UTC()
	hours := 1
	if start.Minute() > 30 {
		hours = 2
	}
	return start.Truncate(time.Hour).Add(time.Duration(hours) * time.Hour)
}

// ResolveEnd rolls an end time forward a day when it falls before start.
func ResolveEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}
