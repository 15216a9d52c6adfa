package cwa

import "strings"

// Turbulence selections for a turbulence or low level wind shear CWA.
type Turbulence struct {
	Frequency      string     `yaml:"frequency"`
	Intensity      string     `yaml:"intensity"`
	From           Level      `yaml:"from"` // SFC or 010..440
	To             Level      `yaml:"to"`
	LLWS           bool       `yaml:"llws"`
	Conditions     Conditions `yaml:"conditions"`
	Aircraft       bool       `yaml:"aircraft"`
	AdditionalInfo string     `yaml:"additional_info"` // AIRMET TANGO this adds to
	NoUpdate       bool       `yaml:"no_update"`
}

func (t *Turbulence) Hazard() Hazard {
	return HazardTurbLLWS
}

func (t *Turbulence) Validate(d Drawing) error {
	if err := areaOnly(d); err != nil {
		return err
	}
	if err := checkRange(turbulenceTitle, flightLevelsNoun, t.From, t.To); err != nil {
		return err
	}
	if err := oneOf(turbulenceTitle, "frequency", t.Frequency, Frequencies); err != nil {
		return err
	}
	if err := oneOf(turbulenceTitle, "intensity", t.Intensity, TurbIntensities); err != nil {
		return err
	}
	return t.Conditions.validate()
}

func (t *Turbulence) Assemble(f Frame) string {
	end := f.end()

	var b strings.Builder
	b.WriteString(f.preamble(f.FromLine))
	b.WriteString(f.Body + " " + t.Frequency + " " + t.Intensity + " TURB ")
	b.WriteString(LevelRange(t.From, t.To))
	if t.LLWS {
		b.WriteString(" AND LLWS")
	}
	if clause := t.Conditions.clause(end); clause != "" {
		b.WriteString(" " + clause)
	}

	addnl := ""
	if info := strings.TrimSpace(t.AdditionalInfo); info != "" {
		addnl = "THIS IS ADDN INFO TO AIRMET TANGO " + info
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
