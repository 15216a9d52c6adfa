package cwa

import (
	"strconv"
	"strings"
)

// Eruption states.
const (
	Erupted          = "ERUPTED"
	Erupting         = "ERUPTING"
	StoppedErupting  = "STOPPED"
	PossibleEruption = "POSSIBLE"
)

var (
	AshSources      = []string{"Satellite", "Radar", "Satellite & Radar", "PIREP", "Webcam", "Volcano Observatory"}
	PlumeDirections = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
)

var eruptionText = map[string]string{
	Erupted:          "HAS ERUPTED.",
	Erupting:         "CONTINUES TO ERUPT.",
	StoppedErupting:  "HAS STOPPED ERUPTING.",
	PossibleEruption: "HAS POSSIBLE ERUPTION.",
}

const volcanoTitle = "Volcano"

// Volcano selections for a volcanic ash CWA.
type Volcano struct {
	Name       string  `yaml:"name"`
	Lat        float64 `yaml:"lat"`
	Lon        float64 `yaml:"lon"`
	Status     string  `yaml:"status"`
	Ash        string  `yaml:"ash"` // Where the ash is seen
	Estimated  bool    `yaml:"estimated"`
	Tops       Level   `yaml:"tops"`
	PlumeDir   string  `yaml:"plume_direction"`
	PlumeSpeed string  `yaml:"plume_speed"` // MOV LTL or "NN KT"
	Reach      string  `yaml:"reach"`       // Place the ash will reach, blank to omit
	Within     string  `yaml:"within"`      // e.g. "3 HOURS"
}

func (v *Volcano) Hazard() Hazard {
	return HazardVolcano
}

func (v *Volcano) Validate(Drawing) error {
	if strings.TrimSpace(v.Name) == "" {
		return &ValidationError{Title: volcanoTitle, Message: "Please select a volcano."}
	}
	if _, ok := eruptionText[v.Status]; !ok && v.Status != "" {
		return &ValidationError{Title: volcanoTitle, Message: "unknown eruption status " + strconv.Quote(v.Status)}
	}
	if err := oneOf(volcanoTitle, "ash", v.Ash, AshSources); err != nil {
		return err
	}
	if tops, err := v.Tops.Value(); err != nil || tops <= 0 {
		return &ValidationError{Title: volcanoTitle, Message: "invalid ash tops " + strconv.Quote(string(v.Tops))}
	}
	if v.PlumeSpeed != MovLTL {
		if err := oneOf(volcanoTitle, "plume direction", v.PlumeDir, PlumeDirections); err != nil {
			return err
		}
	}
	return nil
}

func (v *Volcano) Assemble(f Frame) string {
	var b strings.Builder
	b.WriteString(f.preamble(overVOR(f.FromLine)))

	b.WriteString(strings.ToUpper(v.Name) + " VOLCANO AT " + decimal(v.Lat) + " LAT " + decimal(v.Lon) + " LON ")
	status, ok := eruptionText[v.Status]
	if !ok {
		status = eruptionText[PossibleEruption]
	}
	b.WriteString(status + "\n")

	b.WriteString("ASH IS APPARENT ON ")
	switch v.Ash {
	case AshSources[0]:
		b.WriteString("SATELLITE.\n")
	case AshSources[1]:
		b.WriteString("NEXRAD RADAR.\n")
	case AshSources[2]:
		b.WriteString("SATELLITE AND NEXRAD RADAR.\n")
	default:
		b.WriteString(strings.ToUpper(v.Ash) + ".\n")
	}

	b.WriteString("ASH TOPS ARE ")
	if v.Estimated {
		b.WriteString("ESTIMATED TO ")
	}
	b.WriteString(v.Tops.upper() + ".\n")

	if v.PlumeSpeed == MovLTL || v.PlumeSpeed == "" {
		b.WriteString("PLUME IS " + MovLTL + ".\n")
	} else {
		b.WriteString("PLUME IS MOVING " + v.PlumeDir + " AT " + v.PlumeSpeed + ".\n")
	}

	if strings.TrimSpace(v.Reach) != "" {
		b.WriteString("PUFF MODELS INDICATE ASH WILL REACH " + v.Reach + " WITHIN " + v.Within + ".\n")
	}

	b.WriteString("THIS PRODUCT IS VALID UNTIL " + f.end())
	b.WriteString("\nOR UNTIL A VOLCANIC ASH SIGMET AND/OR VAA IS ISSUED.")
	if f.StateIDs != "" {
		b.WriteString(" " + f.StateIDs)
	}
	b.WriteString(FinalLine)
	return b.String()
}
