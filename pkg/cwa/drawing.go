package cwa

import (
	"strconv"
	"strings"
)

type DrawingType string

const (
	DrawingArea     DrawingType = "AREA"
	DrawingLine     DrawingType = "LINE"
	DrawingIsolated DrawingType = "ISOLATED"
)

// Lines this wide or wider are described as areas.
const wideLine = 20.0

type LatLon struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Drawing is the outline the forecaster drew on the map.
type Drawing struct {
	Type   DrawingType `yaml:"type" json:"type"`
	Width  float64     `yaml:"width" json:"width"` // Nautical miles
	Points []LatLon    `yaml:"points" json:"points"`
}

// Area reports whether the drawing reads as an area.
func (d Drawing) Area() bool {
	return d.Type == DrawingArea || (d.Type == DrawingLine && d.Width >= wideLine)
}

func (d Drawing) Isolated() bool {
	return d.Type == DrawingIsolated
}

// NarrowLine is a line drawing thin enough to keep its width clause.
func (d Drawing) NarrowLine() bool {
	return d.Type == DrawingLine && d.Width < wideLine
}

// Body is the drawing description that opens a CWA hazard line.
func (d Drawing) Body() string {
	switch {
	case d.Area():
		return "AREA"
	case d.Isolated():
		return "ISOL DIAM " + decimal(d.Width) + "NM"
	}
	return "LINE ..." + decimal(d.Width) + " NM WIDE..."
}

// StateBody is the drawing description used by the state annotated CWS.
func (d Drawing) StateBody() string {
	switch d.Type {
	case DrawingLine:
		return "AREA..." + strconv.Itoa(int(d.Width)) + " NM WIDE..."
	case DrawingIsolated:
		return "ISOL...DIAM " + strconv.Itoa(int(d.Width)) + "NM..."
	}
	return "AREA OF "
}

// BuildFromLine turns the VOR description of a drawing into the location line.
// Lines and isolated cells drop a repeated closing vertex. A single point is
// left bare so it can become an "OVR" location.
func BuildFromLine(vors string, d Drawing) (string, error) {
	vors = strings.TrimSpace(vors)
	if vors == "" {
		return "", ErrNoVORs
	}

	if !d.Area() {
		items := strings.Split(vors, "-")
		if len(items) > 1 && items[0] == items[len(items)-1] {
			vors = vors[:strings.LastIndex(vors, "-")]
		}
	}

	if d.Isolated() {
		return vors, nil
	}
	return "FROM " + vors, nil
}

// BuildStateFromLine is BuildFromLine for the state annotated CWS, which keeps
// every vertex.
func BuildStateFromLine(vors string, d Drawing) (string, error) {
	vors = strings.TrimSpace(vors)
	if vors == "" {
		return "", ErrNoVORs
	}
	if d.Isolated() {
		return vors, nil
	}
	return "FROM " + vors, nil
}

// overVOR marks a single VOR location as "OVR <vor>".
func overVOR(fromLine string) string {
	if len(fromLine) == 3 {
		return "OVR " + fromLine
	}
	return fromLine
}

// decimal prints a width the way the drawing tool reports it: at least one
// fractional digit.
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
