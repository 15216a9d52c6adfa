package cwa

import (
	"strconv"
	"strings"
)

// Cancel selections for a cancellation or manually worded CWA.
type Cancel struct {
	Cancel    bool   `yaml:"cancel"`     // Cancel the previous CWA instead of giving a location
	SeeSigmet string `yaml:"see_sigmet"` // Convective SIGMET superseding the CWA
	NoUpdate  bool   `yaml:"no_update"`
}

func (c *Cancel) Hazard() Hazard {
	return HazardCanMan
}

func (c *Cancel) Validate(Drawing) error {
	return nil
}

// previous is the series being cancelled. The prior product is preferred
// since the new series may have wrapped.
func (c *Cancel) previous(f Frame) int {
	if n, ok := f.Prior.Number(); ok {
		return n
	}
	return f.SeriesID - 1
}

func (c *Cancel) Assemble(f Frame) string {
	end := f.end()

	var b strings.Builder
	b.WriteString(f.Header + f.ValidLine)
	if c.Cancel {
		b.WriteString("CANCEL " + f.Office.CWSU + " CWA " + strconv.Itoa(c.previous(f)) + ". ")
	} else {
		b.WriteString(overVOR(f.FromLine))
	}

	if sigmet := strings.TrimSpace(c.SeeSigmet); sigmet != "" {
		b.WriteString("\nSEE CONVECTIVE SIGMET " + sigmet)
	}
	if c.NoUpdate {
		b.WriteString("\nNO UPDT AFT " + end + "Z. ")
	}

	b.WriteString(FinalLine)
	return b.String()
}
