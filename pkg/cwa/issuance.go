package cwa

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Issuance numbers run 1 through 99 within a phenomenon.
const maxIssuance = 99

// Issuance is the next issuance number and whether the counter restarted.
type Issuance struct {
	Number int
	Reset  bool
}

// Sequencer hands out issuance numbers. Issuance restarts every local day in
// Zone, except for cancellations which always continue the sequence.
type Sequencer struct {
	Clock clockwork.Clock
	Zone  *time.Location
}

func NewSequencer(clock clockwork.Clock, zone *time.Location) *Sequencer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if zone == nil {
		zone = time.UTC
	}
	return &Sequencer{Clock: clock, Zone: zone}
}

// Next computes the issuance number following priorSeries. A nil inserted
// time means there is no prior product.
func (s *Sequencer) Next(priorSeries string, inserted *time.Time, forceReset bool, hazard Hazard) Issuance {
	if inserted == nil || forceReset {
		log.Info().Bool("forced", forceReset).Msg("issuance number reset to 1")
		return Issuance{Number: 1, Reset: true}
	}

	current := 0
	if series := strings.TrimSpace(priorSeries); series != "" {
		n, err := strconv.Atoi(series)
		if err != nil {
			log.Warn().Err(err).Str("series", priorSeries).Msg("failed to parse prior series")
		} else {
			current = n % 100
		}
	}

	next := Issuance{Number: current + 1}
	if current == maxIssuance {
		log.Info().Msg("issuance number reset to 1 after 99")
		next = Issuance{Number: 1, Reset: true}
	}

	if hazard == HazardCanMan {
		return next
	}

	now := s.Clock.Now().In(s.Zone)
	last := inserted.In(s.Zone)
	if now.Year() > last.Year() || (now.Year() == last.Year() && now.YearDay() > last.YearDay()) {
		log.Info().Msg("issuance number reset to 1 for the first product of the local day")
		return Issuance{Number: 1, Reset: true}
	}

	return next
}

// reusedIssuance is the issuance carried over from a prior series. A series
// ending in 00 has no valid issuance and is not reused.
func reusedIssuance(series int) (Issuance, bool) {
	n := series % 100
	if n < 1 || n > maxIssuance {
		return Issuance{}, false
	}
	return Issuance{Number: n}, true
}

// NextForPrior parses the prior product and computes the following issuance.
func (s *Sequencer) NextForPrior(prior *Prior, cwsuID string, forceReset bool, hazard Hazard) Issuance {
	if prior == nil {
		return s.Next(blankSeries, nil, forceReset, hazard)
	}
	fields := prior.Parse(cwsuID)
	inserted := prior.Inserted
	return s.Next(fields.Series, &inserted, forceReset, hazard)
}

// PhenomenonDigit is the trailing digit of a CWA product identifier, or 0.
func PhenomenonDigit(productID string) int {
	if last := lastChar(productID); last != "" && last[0] >= '0' && last[0] <= '9' {
		return int(last[0] - '0')
	}
	return 0
}

// SeriesID combines the phenomenon digit with the issuance number.
func SeriesID(productID string, issuance int) int {
	return PhenomenonDigit(productID)*100 + issuance
}
