package cwa

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Durations a MIS may be issued for, in hours.
var MISDurations = []int{1, 2, 3, 6, 12, 24, 36, 48}

// MIS selections for the default meteorological impact statement.
type MIS struct {
	DurationHours int  `yaml:"duration_hours"` // Sets the end time from the start when non-zero
	Cancel        bool `yaml:"cancel"`         // Cancel the previous MIS
	NoUpdate      bool `yaml:"no_update"`
}

func (m *MIS) Hazard() Hazard {
	return HazardMIS
}

func (m *MIS) Validate(Drawing) error {
	if m.DurationHours != 0 && !slices.Contains(MISDurations, m.DurationHours) {
		return &ValidationError{
			Title:   "MIS",
			Message: fmt.Sprintf("duration %d is not one of %v hours", m.DurationHours, MISDurations),
		}
	}
	return nil
}

// reusesSeriesOnCorrection keeps the prior number when correcting a MIS.
func (m *MIS) reusesSeriesOnCorrection() bool {
	return true
}

func (m *MIS) Assemble(f Frame) string {
	start, end := f.start(), f.end()

	previous := maxIssuance
	if n, ok := f.Prior.Number(); ok {
		previous = n % 100
	}

	var b strings.Builder
	b.WriteString(f.Office.MISHeading() + " " + start + " \n")
	b.WriteString(fmt.Sprintf("%s MIS %02d VALID %s-%sZ", f.Office.CWSU, f.Issuance.Number, start, end))
	if f.Correction {
		b.WriteString(" COR")
	}
	b.WriteString(" \n")
	b.WriteString("... FOR ATC PLANNING PURPOSES ONLY...\n")
	if m.Cancel {
		b.WriteString(fmt.Sprintf("CANCEL %s MIS %02d. ", f.Office.CWSU, previous))
	}
	if m.NoUpdate {
		b.WriteString("NO UPDT AFT " + end + "Z.\n\n")
	}
	b.WriteString(FinalLine)
	return b.String()
}

const cwsTitle = "TOPS Selection"

// CWSState selections for the state annotated convective CWS. It is numbered
// with the MIS products.
type CWSState struct {
	Type      string `yaml:"type"`
	Intensity string `yaml:"intensity"`
	Direction string `yaml:"direction"`
	Speed     string `yaml:"speed"`
	TopsFrom  Level  `yaml:"tops_from"`  // --- or 180..550
	TopsTo    Level  `yaml:"tops_to"`    // 250..600
	ContAfter int    `yaml:"cont_after"` // Hour, 1..24
}

func (c *CWSState) Hazard() Hazard {
	return HazardMIS
}

func (c *CWSState) Validate(Drawing) error {
	if err := checkRange(cwsTitle, "Tops values", c.TopsFrom, c.TopsTo); err != nil {
		return err
	}
	if err := oneOf("CWS", "type", c.Type, ThunderstormTypes); err != nil {
		return err
	}
	if c.ContAfter < 1 || c.ContAfter > 24 {
		return &ValidationError{Title: "CWS", Message: "CONT AFTER hour must be between 1 and 24."}
	}
	return nil
}

func (c *CWSState) headings(o Office, productID string) (string, string) {
	return o.CWSHeadings(productID)
}

func (c *CWSState) fromLine(vors string, d Drawing) (string, error) {
	return BuildStateFromLine(vors, d)
}

func (c *CWSState) Assemble(f Frame) string {
	var b strings.Builder
	b.WriteString(f.preamble(overVOR(f.FromLine)))

	body := f.Drawing.StateBody()
	if strings.HasPrefix(body, "A") {
		b.WriteString(strings.TrimSpace(body) + " ")
	}
	b.WriteString(c.Type)
	if strings.HasPrefix(body, "I") {
		b.WriteString(body[4:])
	}
	b.WriteString(intensityClause(c.Intensity))
	b.WriteString(movement(c.Direction, c.Speed) + ".\n")

	b.WriteString("TOPS")
	if from := c.TopsFrom.norm(); from == LevelNone || from == LevelTo {
		b.WriteString(" TO FL" + string(c.TopsTo))
	} else {
		b.WriteString(" FL" + string(c.TopsFrom) + "-" + string(c.TopsTo))
	}
	b.WriteString(". CONT AFTER " + strconv.Itoa(c.ContAfter) + "Z.  ")
	b.WriteString(f.StateIDs)
	b.WriteString(FinalLine)
	return b.String()
}
