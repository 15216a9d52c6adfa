package cwa

import "strings"

var (
	Frequencies      = []string{"OCNL", "FQT", "CONS"}
	IcingIntensities = []string{"MOD", "MOD/SEV", "SEV", "EXTRM"}
	IcingTypes       = []string{"CLR ICE", "RIME ICE", "MXD ICE", "FZDZ", "FZRA", "SLT"}
	TurbIntensities  = []string{"MOD", "MOD ISOL SEV", "MOD OCNL SEV", "MOD/SEV", "SEV", "EXTRM"}
)

const (
	icingTitle       = "Icing/FRZA"
	turbulenceTitle  = "Turb/LLWS"
	flightLevelsNoun = "Flight levels"
)

// Icing selections for an icing or freezing precipitation CWA.
type Icing struct {
	Frequency      string     `yaml:"frequency"`
	Intensity      string     `yaml:"intensity"`
	Type           string     `yaml:"type"`
	From           Level      `yaml:"from"` // SFC or 010..440
	To             Level      `yaml:"to"`   // 010..450
	Conditions     Conditions `yaml:"conditions"`
	Aircraft       bool       `yaml:"aircraft"`
	AdditionalInfo string     `yaml:"additional_info"` // AIRMET ZULU this adds to
	NoUpdate       bool       `yaml:"no_update"`
}

func (i *Icing) Hazard() Hazard {
	return HazardIcingFRZA
}

func (i *Icing) Validate(d Drawing) error {
	if err := areaOnly(d); err != nil {
		return err
	}
	if err := checkRange(icingTitle, flightLevelsNoun, i.From, i.To); err != nil {
		return err
	}
	if err := oneOf(icingTitle, "frequency", i.Frequency, Frequencies); err != nil {
		return err
	}
	if err := oneOf(icingTitle, "intensity", i.Intensity, IcingIntensities); err != nil {
		return err
	}
	if err := oneOf(icingTitle, "type", i.Type, IcingTypes); err != nil {
		return err
	}
	return i.Conditions.validate()
}

func (i *Icing) Assemble(f Frame) string {
	end := f.end()

	var b strings.Builder
	b.WriteString(f.preamble(f.FromLine))
	b.WriteString(f.Body + " " + i.Frequency + " " + i.Intensity + " " + i.Type + " ")
	b.WriteString(LevelRange(i.From, i.To))
	if clause := i.Conditions.clause(end); clause != "" {
		b.WriteString(" " + clause)
	}

	addnl := ""
	if info := strings.TrimSpace(i.AdditionalInfo); info != "" {
		addnl = "THIS IS ADDN INFO TO AIRMET ZULU " + info
	}
	tail{
		aircraft: i.Aircraft,
		addnl:    addnl,
		noUpdate: i.NoUpdate,
		end:      end,
		stateIDs: f.StateIDs,
	}.write(&b)

	return b.String()
}
