package cwa

import "strings"

var (
	DustTypes        = []string{"BLDU", "BLSA"}
	DustGusts        = []string{"20-30 KTS", "30-40 KTS", "40-50 KTS", "50-60 KTS"}
	DustVisibilityTo = []string{"1/2", "3/4", "1", "1 1/2", "3", "5"}
	DustSpreading    = []string{"", "SPRDG", "???"}
	DustHeadings     = []string{"NWD", "NEWD", "EWD", "SEWD", "SWD", "SWWD", "WWD", "NWWD"}
)

const dustTitle = "BLDU/BLSA"

// Dust selections for a blowing dust or blowing sand CWA.
type Dust struct {
	Coverage       string `yaml:"coverage"` // Kept with the selections, not written
	Type           string `yaml:"type"`
	Direction      string `yaml:"direction"` // 010..360
	Gust           string `yaml:"gust"`
	VisibilityFrom string `yaml:"visibility_from"`
	VisibilityTo   string `yaml:"visibility_to"`
	Spreading      string `yaml:"spreading"`
	Heading        string `yaml:"heading"`
}

func (d *Dust) Hazard() Hazard {
	return HazardBLDUBLSA
}

func (d *Dust) Validate(drawing Drawing) error {
	if !drawing.Area() && !drawing.Isolated() {
		return &ValidationError{Title: dustTitle, Message: "Blowing dust and sand must be drawn as an area or isolated cell."}
	}
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"type", d.Type, DustTypes},
		{"gust", d.Gust, DustGusts},
		{"visibility from", strings.TrimSpace(d.VisibilityFrom), VisibilitiesLow},
		{"visibility to", d.VisibilityTo, DustVisibilityTo},
		{"spreading", d.Spreading, DustSpreading},
		{"heading", d.Heading, DustHeadings},
	}
	for _, c := range checks {
		if err := oneOf(dustTitle, c.field, c.value, c.allowed); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dust) Assemble(f Frame) string {
	var b strings.Builder
	b.WriteString(f.preamble(overVOR(f.FromLine)))
	if f.Drawing.Area() {
		b.WriteString(f.Body + " ")
	}
	b.WriteString(d.Type + " WITH SFC WNDS MOV FROM " + d.Direction)
	b.WriteString(" GUSTS " + d.Gust + "\n")
	b.WriteString("VIS " + lowBound(d.VisibilityFrom) + d.VisibilityTo + "SM\n")
	b.WriteString("CONDS " + d.Spreading + " " + d.Heading + ".")
	if f.StateIDs != "" {
		b.WriteString(" " + f.StateIDs)
	}
	b.WriteString(FinalLine)
	return b.String()
}
