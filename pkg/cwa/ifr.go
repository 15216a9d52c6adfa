package cwa

import "strings"

// Obstructions to visibility in the order they are written.
var Obstructions = []string{"BR", "FG", "HZ", "DZ", "RA", "SN", "FU", "DU", "SS"}

var (
	Coverages       = []string{"", "OCNL", "SCT", "WDSPRD"}
	FlightRules     = []string{"IFR", "IFR/PTCHY LIFR", "IFR/LIFR", "LIFR"}
	CeilingsFrom    = []string{"AOB", "000", "002", "003", "004", "005"}
	CeilingsTo      = []string{"002", "003", "004", "005", "010"}
	VisibilitiesLow = []string{"AOB", "LOCLY AOB", "1/4", "1/2", "3/4", "1"}
	VisibilitiesTo  = []string{"1/4SM", "1/2SM", "3/4SM", "1SM", "1 1/2SM", "3SM"}
)

const ifrTitle = "IFR/LIFR"

// IFR selections for an IFR or LIFR conditions CWA.
type IFR struct {
	Developing     bool       `yaml:"developing"`
	Coverage       string     `yaml:"coverage"`
	Flight         string     `yaml:"flight"`
	CeilingFrom    string     `yaml:"ceiling_from"`
	CeilingTo      string     `yaml:"ceiling_to"`
	VisibilityFrom string     `yaml:"visibility_from"`
	VisibilityTo   string     `yaml:"visibility_to"`
	Obstructions   []string   `yaml:"obstructions"`
	Conditions     Conditions `yaml:"conditions"`
	Aircraft       bool       `yaml:"aircraft"`
	AdditionalInfo string     `yaml:"additional_info"` // Convective SIGMET this adds to
	NoUpdate       bool       `yaml:"no_update"`
}

func (i *IFR) Hazard() Hazard {
	return HazardIFRLIFR
}

func (i *IFR) Validate(d Drawing) error {
	if len(i.obstructions()) == 0 {
		return &ValidationError{
			Title:   "Select Visibility Options",
			Message: "Please select one or more of the visibility options: " + strings.Join(Obstructions, ", "),
		}
	}
	if err := areaOnly(d); err != nil {
		return err
	}
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"coverage", i.Coverage, Coverages},
		{"flight", i.Flight, FlightRules},
		{"ceiling from", strings.TrimSpace(i.CeilingFrom), CeilingsFrom},
		{"ceiling to", i.CeilingTo, CeilingsTo},
		{"visibility from", strings.TrimSpace(i.VisibilityFrom), VisibilitiesLow},
		{"visibility to", i.VisibilityTo, VisibilitiesTo},
	}
	for _, c := range checks {
		if err := oneOf(ifrTitle, c.field, c.value, c.allowed); err != nil {
			return err
		}
	}
	return i.Conditions.validate()
}

// obstructions returns the selected obstructions in writing order.
func (i *IFR) obstructions() []string {
	selected := map[string]bool{}
	for _, o := range i.Obstructions {
		selected[strings.ToUpper(strings.TrimSpace(o))] = true
	}
	var out []string
	for _, o := range Obstructions {
		if selected[o] {
			out = append(out, o)
		}
	}
	return out
}

func (i *IFR) Assemble(f Frame) string {
	end := f.end()

	var b strings.Builder
	b.WriteString(f.preamble(f.FromLine))
	if i.Developing {
		b.WriteString("DVLPG ")
	}
	b.WriteString(f.Body + " " + i.Coverage + " " + i.Flight + " CONDS. ")
	b.WriteString("CIGS " + lowBound(i.CeilingFrom) + i.CeilingTo + ". ")
	b.WriteString("VIS " + lowBound(i.VisibilityFrom) + i.VisibilityTo + " ")
	b.WriteString(strings.Join(i.obstructions(), "/") + ". ")
	b.WriteString(i.Conditions.clause(end))

	addnl := ""
	if info := strings.TrimSpace(i.AdditionalInfo); info != "" {
		addnl = "THIS IS ADDN INFO TO CNVTV SIGMET " + info
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

// lowBound renders the bottom of a ceiling or visibility range. "AOB" style
// bounds stand alone, numbers are joined to the top with a dash.
func lowBound(v string) string {
	v = strings.TrimSpace(v)
	if v == "AOB" || v == "LOCLY AOB" {
		return v + " "
	}
	return v + "-"
}
