package cwa

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Movement word used when a system is not moving appreciably.
const MovLTL = "MOV LTL"

// Assembler renders the product text for one hazard's selections.
type Assembler interface {
	// Hazard is the phenomenon the issuance number is counted against.
	Hazard() Hazard
	// Validate checks the selections before any number is handed out.
	Validate(d Drawing) error
	// Assemble renders the complete product.
	Assemble(f Frame) string
}

// Frame is everything an assembler needs besides its own selections.
type Frame struct {
	Office     Office
	ProductID  string // Retrieval identifier, its last digit is the phenomenon
	Start      time.Time
	End        time.Time
	Correction bool
	Issuance   Issuance
	SeriesID   int
	Prior      PriorFields // Fields of the product being replaced
	Header     string      // WMO heading and header lines
	ValidLine  string
	FromLine   string
	Body       string // Drawing description, "AREA", "LINE ..." or "ISOL ..."
	Drawing    Drawing
	StateIDs   string
}

func (f Frame) start() string {
	return FormatDDHHMM(f.Start)
}

func (f Frame) end() string {
	return FormatDDHHMM(f.End)
}

// preamble is the header lines, valid line and location line.
func (f Frame) preamble(fromLine string) string {
	return f.Header + f.ValidLine + fromLine + "\n"
}

// Conditions is the outlook clause closing most hazard lines.
type Conditions string

const (
	ConditionsNone       Conditions = ""
	ConditionsContinuing Conditions = "CONTG"
	ConditionsImproving  Conditions = "IMPR"
)

func (c Conditions) clause(end string) string {
	switch c {
	case ConditionsContinuing:
		return "CONDS CONTG BYD " + end + "Z."
	case ConditionsImproving:
		return "CONDS IMPR BY " + end + "Z."
	}
	return ""
}

func (c Conditions) validate() error {
	switch c {
	case ConditionsNone, ConditionsContinuing, ConditionsImproving:
		return nil
	}
	return &ValidationError{Title: "Conditions", Message: fmt.Sprintf("unknown conditions %q", string(c))}
}

// tail holds the optional closing clauses shared by the hazard lines.
type tail struct {
	aircraft bool
	addnl    string // Complete additional information clause, empty when absent
	noUpdate bool
	end      string
	stateIDs string
}

func (t tail) write(b *strings.Builder) {
	if t.aircraft {
		b.WriteString(" RPRTD BY AIRCRAFT.")
	}
	if t.addnl != "" {
		b.WriteString(" " + t.addnl)
	}
	if t.noUpdate {
		b.WriteString(" NO UPDT AFT " + t.end + "Z.")
	}
	if t.stateIDs != "" {
		b.WriteString(" " + t.stateIDs)
	}
	b.WriteString(FinalLine)
}

// movement renders "MOV LTL" or "MOV FROM <dir><speed>KT". Speeds are three
// digits with the leading zero dropped.
func movement(dir, speed string) string {
	if dir == "" || dir == "---" || speed == "" || speed == MovLTL {
		return MovLTL
	}
	if len(speed) > 1 {
		speed = speed[1:]
	}
	return "MOV FROM " + dir + speed + "KT"
}

// intensityClause renders ". " or " WITH <intensity> PCPN. ".
func intensityClause(intensity string) string {
	if intensity == "" || intensity == "---" {
		return ". "
	}
	return " WITH " + intensity + " PCPN. "
}

func oneOf(title, field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{
		Title:   title,
		Message: fmt.Sprintf("%s %q must be one of %s", field, value, strings.Join(allowed, ", ")),
	}
}

// areaOnly rejects line and isolated drawings for hazards described by area.
func areaOnly(d Drawing) error {
	if d.Type != DrawingArea {
		return &ValidationError{Title: "Area only", Message: "This hazard can only be drawn as an area."}
	}
	return nil
}
