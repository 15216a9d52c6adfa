package cwa

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a selected altitude in hundreds of feet ("050", "240") or one of
// the bounding words TO, ABV, SFC and ---.
type Level string

const (
	LevelTo      Level = "TO"
	LevelAbove   Level = "ABV"
	LevelSurface Level = "SFC"
	LevelNone    Level = "---"
)

// Altitudes at or above this are written as flight levels.
const flightLevelFloor = 180

// FlightLevel renders an altitude in hundreds of feet, prefixing FL from 180 up.
func FlightLevel(v int) string {
	s := fmt.Sprintf("%03d", v)
	if v >= flightLevelFloor {
		return "FL" + s
	}
	return s
}

// Value returns the numeric altitude. Bounding words count as zero.
func (l Level) Value() (int, error) {
	switch l.norm() {
	case LevelTo, LevelAbove, LevelSurface, LevelNone:
		return 0, nil
	}
	v, err := strconv.Atoi(string(l.norm()))
	if err != nil {
		return 0, fmt.Errorf("invalid level %q", string(l))
	}
	return v, nil
}

func (l Level) norm() Level {
	return Level(strings.ToUpper(strings.TrimSpace(string(l))))
}

// lower renders the bottom of a range, including the joining dash for numbers.
func (l Level) lower() string {
	switch l.norm() {
	case LevelTo, LevelNone:
		return "TO "
	case LevelAbove:
		return "ABV "
	case LevelSurface:
		return "BLW "
	}
	v, err := l.Value()
	if err != nil {
		return string(l) + "-"
	}
	return FlightLevel(v) + "-"
}

// upper renders the top of a range.
func (l Level) upper() string {
	v, err := l.Value()
	if err != nil {
		return string(l)
	}
	return FlightLevel(v)
}

// LevelRange renders a bottom and top pair, e.g. "TO FL350" or "080-FL240".
func LevelRange(from, to Level) string {
	return from.lower() + to.upper()
}

// checkRange reports a validation error when the top does not exceed the bottom.
// noun names the pair in the message, e.g. "Tops values".
func checkRange(title, noun string, from, to Level) error {
	top, err := to.Value()
	if err != nil {
		return &ValidationError{Title: title, Message: err.Error()}
	}
	bottom, err := from.Value()
	if err != nil {
		return &ValidationError{Title: title, Message: err.Error()}
	}
	if top <= bottom {
		return &ValidationError{
			Title:   title,
			Message: fmt.Sprintf("The %s %s/%s are invalid.", noun, to, from),
		}
	}
	return nil
}
