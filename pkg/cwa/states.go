package cwa

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
)

// Feature properties checked, in order, for a state identifier.
var stateIDProperties = []string{"id", "state", "STATE", "abbr", "STUSPS"}

type statePolygon struct {
	id       string
	polygons []*geom.Polygon
}

// StateLocator finds the states a drawing touches.
type StateLocator struct {
	states []statePolygon
}

// LoadStates reads a GeoJSON feature collection of state outlines. Polygon and
// MultiPolygon features are accepted.
func LoadStates(r io.Reader) (*StateLocator, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("could not decode state polygons: %w", err)
	}

	locator := &StateLocator{}
	for _, feature := range fc.Features {
		id := featureStateID(feature)
		if id == "" {
			log.Warn().Msg("state feature has no identifier, skipping")
			continue
		}

		state := statePolygon{id: id}
		switch g := feature.Geometry.(type) {
		case *geom.Polygon:
			state.polygons = append(state.polygons, g)
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				state.polygons = append(state.polygons, g.Polygon(i))
			}
		default:
			log.Warn().Str("state", id).Msgf("unsupported geometry %T, skipping", feature.Geometry)
			continue
		}
		locator.states = append(locator.states, state)
	}

	return locator, nil
}

func featureStateID(f *geojson.Feature) string {
	for _, key := range stateIDProperties {
		if v, ok := f.Properties[key].(string); ok && v != "" {
			return strings.ToUpper(v)
		}
	}
	return strings.ToUpper(f.ID)
}

// States returns the space separated identifiers of states containing a point
// of the drawing. Areas also pick up states with a vertex inside the drawing.
func (l *StateLocator) States(d Drawing) string {
	if l == nil {
		return ""
	}

	var found []string
	seen := map[string]bool{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			found = append(found, id)
		}
	}

	for _, state := range l.states {
		for _, p := range d.Points {
			if state.contains(geom.Coord{p.Lon, p.Lat}) {
				add(state.id)
				break
			}
		}
	}

	if d.Type == DrawingArea && len(d.Points) > 2 {
		ring := drawingRing(d.Points)
		for _, state := range l.states {
			if seen[state.id] {
				continue
			}
			if state.hasVertexIn(ring) {
				add(state.id)
			}
		}
	}

	return strings.Join(found, " ")
}

func (s statePolygon) contains(c geom.Coord) bool {
	for _, polygon := range s.polygons {
		if polygon.NumLinearRings() == 0 {
			continue
		}
		shell := polygon.LinearRing(0)
		if !xy.IsPointInRing(shell.Layout(), c, shell.FlatCoords()) {
			continue
		}
		inHole := false
		for i := 1; i < polygon.NumLinearRings(); i++ {
			hole := polygon.LinearRing(i)
			if xy.IsPointInRing(hole.Layout(), c, hole.FlatCoords()) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

func (s statePolygon) hasVertexIn(ring []float64) bool {
	for _, polygon := range s.polygons {
		if polygon.NumLinearRings() == 0 {
			continue
		}
		shell := polygon.LinearRing(0)
		flat, stride := shell.FlatCoords(), shell.Stride()
		for i := 0; i+1 < len(flat); i += stride {
			if xy.IsPointInRing(geom.XY, geom.Coord{flat[i], flat[i+1]}, ring) {
				return true
			}
		}
	}
	return false
}

// drawingRing closes the drawing outline as flat XY coordinates.
func drawingRing(points []LatLon) []float64 {
	ring := make([]float64, 0, 2*(len(points)+1))
	for _, p := range points {
		ring = append(ring, p.Lon, p.Lat)
	}
	first, last := points[0], points[len(points)-1]
	if first != last {
		ring = append(ring, first.Lon, first.Lat)
	}
	return ring
}
