package cwa

import (
	"strconv"
	"strings"
)

var (
	ThunderstormTypes        = []string{"SHRA/TSRA", "TSRA", "TS"}
	PrecipitationIntensities = []string{"---", "MOD", "MOD TO HVY", "HVY", "HVY TO EXTRM", "EXTRM"}
)

// Thunderstorm selections for a convective CWA.
type Thunderstorm struct {
	Type           string     `yaml:"type"`
	Intensity      string     `yaml:"intensity"`
	Direction      string     `yaml:"direction"` // "---" or 010..360
	Speed          string     `yaml:"speed"`     // MOV LTL or 005..060
	TopsFrom       Level      `yaml:"tops_from"`
	TopsTo         Level      `yaml:"tops_to"`
	Estimated      bool       `yaml:"estimated"`
	Developing     bool       `yaml:"developing"`
	Embedded       bool       `yaml:"embedded"`
	Tornado        bool       `yaml:"tornado"`
	Hail           bool       `yaml:"hail"`
	Gust           bool       `yaml:"gust"`
	Conditions     Conditions `yaml:"conditions"`
	Aircraft       bool       `yaml:"aircraft"`
	AdditionalInfo string     `yaml:"additional_info"` // Convective SIGMET this adds to
	NoUpdate       bool       `yaml:"no_update"`
}

func (t *Thunderstorm) Hazard() Hazard {
	return HazardThunderstorm
}

func (t *Thunderstorm) Validate(Drawing) error {
	if err := checkRange("TOPS Selection", "Tops values", t.TopsFrom, t.TopsTo); err != nil {
		return err
	}
	if err := oneOf("Thunderstorm", "type", t.Type, ThunderstormTypes); err != nil {
		return err
	}
	if t.Intensity != "" {
		if err := oneOf("Thunderstorm", "intensity", t.Intensity, PrecipitationIntensities); err != nil {
			return err
		}
	}
	return t.Conditions.validate()
}

func (t *Thunderstorm) severe() bool {
	return t.Tornado || t.Hail || t.Gust
}

func (t *Thunderstorm) Assemble(f Frame) string {
	d := f.Drawing
	end := f.end()

	var b strings.Builder
	b.WriteString(f.preamble(overVOR(f.FromLine)))

	if t.Developing {
		b.WriteString("DVLPG ")
	}
	switch {
	case d.Area():
		b.WriteString("AREA ")
	case d.Isolated():
		b.WriteString("ISOL ")
	default:
		b.WriteString("LINE ")
	}
	if t.Embedded {
		b.WriteString("EMBD ")
	}
	if t.severe() {
		b.WriteString("SEV ")
	}
	b.WriteString(t.Type)

	width := strconv.Itoa(int(d.Width))
	if d.NarrowLine() {
		b.WriteString(" " + width + "NM WIDE")
	} else if d.Isolated() {
		b.WriteString(" DIAM " + width + "NM")
	}

	b.WriteString(intensityClause(t.Intensity))
	b.WriteString(movement(t.Direction, t.Speed))

	b.WriteString(" TOPS ")
	if t.Estimated {
		b.WriteString("EST ")
	}
	b.WriteString(LevelRange(t.TopsFrom, t.TopsTo) + ".")

	if t.Tornado {
		b.WriteString(" TORNADO POSS.")
	}
	if t.Hail {
		b.WriteString(" LARGE HAIL POSS.")
	}
	if t.Gust {
		b.WriteString(" OVR 50KT WIND GUST POSS.")
	}
	if clause := t.Conditions.clause(end); clause != "" {
		b.WriteString(" " + clause)
	}

	addnl := ""
	if t.AdditionalInfo != "" {
		addnl = "THIS IS ADDN INFO TO CONVECTIVE SIGMET " + t.AdditionalInfo + "."
	}
	tail{
		aircraft: t.Aircraft,
		addnl:    addnl,
		noUpdate: t.NoUpdate,
		end:      end,
		stateIDs: f.StateIDs,
	}.write(&b)

	return b.String()
}
