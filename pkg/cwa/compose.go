package cwa

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Result is a composed product ready for review.
type Result struct {
	ProductID string // Retrieval identifier the product was numbered under
	Text      string
	Issuance  Issuance
	SeriesID  int
	Start     time.Time
	End       time.Time
}

// Composer turns selections into product text for one office.
type Composer struct {
	Office Office
	Clock  clockwork.Clock
	States *StateLocator // Optional, fills in state IDs for drawings

	sequencer *Sequencer
	logger    zerolog.Logger
}

func NewComposer(office Office, clock clockwork.Clock, states *StateLocator) *Composer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Composer{
		Office:    office,
		Clock:     clock,
		States:    states,
		sequencer: NewSequencer(clock, office.zone()),
		logger:    log.With().Str("cwsu", office.CWSU).Logger(),
	}
}

// Optional assembler behaviour.
type (
	headed interface {
		headings(o Office, productID string) (string, string)
	}
	fromLiner interface {
		fromLine(vors string, d Drawing) (string, error)
	}
	correctionReuser interface {
		reusesSeriesOnCorrection() bool
	}
)

// Compose validates the selection and renders the product. prior is the latest
// stored product under the same identifier, nil when there is none. A
// ValidationError means nothing was produced and no number was consumed.
func (c *Composer) Compose(sel Selection, prior *Prior) (*Result, error) {
	a, err := sel.Assembler()
	if err != nil {
		return nil, err
	}
	if err := a.Validate(sel.Drawing); err != nil {
		return nil, err
	}

	productID := c.Office.RetrievalID(sel.ProductID)
	logger := c.logger.With().Str("product", productID).Str("hazard", string(a.Hazard())).Logger()

	start, end := c.times(sel, a)

	fromLine, err := c.fromLine(sel, a)
	if err != nil {
		return nil, err
	}

	stateIDs := sel.StateIDs
	if stateIDs == "" && c.States != nil && len(sel.Drawing.Points) > 0 {
		stateIDs = c.States.States(sel.Drawing)
	}

	fields := prior.Parse(c.Office.CWSU)
	issuance := c.sequencer.NextForPrior(prior, c.Office.CWSU, sel.ResetIssuance, a.Hazard())
	if r, ok := a.(correctionReuser); ok && r.reusesSeriesOnCorrection() && sel.Correction {
		if n, ok := fields.Number(); ok {
			if reused, ok := reusedIssuance(n); ok {
				issuance = reused
			} else {
				logger.Warn().Int("series", n).Msg("prior series has no issuance, numbering as a new product")
			}
		}
	}
	seriesID := SeriesID(productID, issuance.Number)

	wmo, header := c.Office.CWAHeadings(productID)
	if h, ok := a.(headed); ok {
		wmo, header = h.headings(c.Office, productID)
	}

	frame := Frame{
		Office:     c.Office,
		ProductID:  productID,
		Start:      start,
		End:        end,
		Correction: sel.Correction,
		Issuance:   issuance,
		SeriesID:   seriesID,
		Prior:      fields,
		Header:     BuildHeader(wmo, FormatDDHHMM(start), header, sel.Correction),
		ValidLine:  BuildValidLine(c.Office.CWSU, FormatDDHHMM(end), seriesID),
		FromLine:   fromLine,
		Body:       sel.Drawing.Body(),
		Drawing:    sel.Drawing,
		StateIDs:   stateIDs,
	}

	text := a.Assemble(frame)
	logger.Debug().Int("series", seriesID).Bool("reset", issuance.Reset).Msg("composed product")

	return &Result{
		ProductID: productID,
		Text:      text,
		Issuance:  issuance,
		SeriesID:  seriesID,
		Start:     start,
		End:       end,
	}, nil
}

func (c *Composer) times(sel Selection, a Assembler) (time.Time, time.Time) {
	start := sel.Start
	if start.IsZero() {
		start = c.Clock.Now()
	}
	start = start.UTC().Truncate(time.Minute)

	if m, ok := a.(*MIS); ok && m.DurationHours > 0 {
		return start, start.Add(time.Duration(m.DurationHours) * time.Hour)
	}

	end := sel.End
	if end.IsZero() {
		return start, DefaultEnd(start)
	}
	return start, ResolveEnd(start, end.UTC())
}

// fromLine prefers a ready made location line and otherwise builds one from
// the drawing's VORs. Hazards that need no location accept an empty one.
func (c *Composer) fromLine(sel Selection, a Assembler) (string, error) {
	if sel.FromLine != "" {
		return sel.FromLine, nil
	}

	build := BuildFromLine
	if f, ok := a.(fromLiner); ok {
		build = f.fromLine
	}
	line, err := build(sel.VORs, sel.Drawing)
	if errors.Is(err, ErrNoVORs) && !needsLocation(a) {
		return "", nil
	}
	if err != nil {
		return "", &ValidationError{Title: "No VORs Drawn", Message: "Please draw the VORs and try again."}
	}
	return line, nil
}

func needsLocation(a Assembler) bool {
	switch a.(type) {
	case *MIS, *Cancel:
		return false
	}
	return true
}
