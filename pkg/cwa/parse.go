package cwa

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	blankSeries = "   "
	blankExpire = "        "
	testExpire  = " TEST   "
)

// Prior is the most recent product stored under a retrieval identifier.
type Prior struct {
	ProductID string
	Text      string
	Inserted  time.Time // When the text database accepted the product
	Reference time.Time // Product reference time, anchors the expiration month
}

// PriorFields holds what could be recovered from a prior product's valid line.
// Series and Expire keep their display form: blank when nothing matched.
type PriorFields struct {
	Series  string
	Expire  string
	expires time.Time
	hasExp  bool
}

// Number returns the parsed series number.
func (p PriorFields) Number() (int, bool) {
	s := strings.TrimSpace(p.Series)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Expires returns the expiration instant when one was parsed.
func (p PriorFields) Expires() (time.Time, bool) {
	return p.expires, p.hasExp
}

// Parse extracts series and expiration from the prior product.
func (p *Prior) Parse(cwsuID string) PriorFields {
	if p == nil {
		return ParsePrior("", cwsuID, time.Time{})
	}
	return ParsePrior(p.Text, cwsuID, p.Reference)
}

// ParsePrior scans every line that starts a CWA, UCWA or MIS valid line for the
// office. When several lines match the last one wins. Malformed lines are
// logged and leave the defaults in place.
func ParsePrior(text string, cwsuID string, reference time.Time) PriorFields {
	fields := PriorFields{
		Series: blankSeries,
		Expire: blankExpire,
	}

	logger := log.With().Str("cwsu", cwsuID).Logger()

	for _, line := range strings.Split(text, "\n") {
		cwa := strings.HasPrefix(line, cwsuID+" CWA")
		ucwa := strings.HasPrefix(line, cwsuID+" UCWA")
		mis := strings.HasPrefix(line, cwsuID+" MIS")
		if !cwa && !ucwa && !mis {
			continue
		}

		items := strings.Fields(line)
		series, expire, ok := "", "", true

		switch {
		case cwa, ucwa:
			series, ok = token(items, 2)
			if ok {
				expire, ok = token(items, 5)
			}
		case strings.HasPrefix(line, cwsuID+" MIS COR"):
			series, ok = token(items, 3)
			if ok {
				expire, ok = token(items, 5)
				if ok && len(expire) >= 7 {
					expire = expire[:7]
				} else {
					ok = false
				}
			}
		default:
			series, ok = token(items, 2)
			if ok {
				expire, ok = token(items, 4)
				if ok && len(expire) > 7 {
					expire = expire[7:]
				} else {
					ok = false
				}
			}
		}

		if series != "" {
			fields.Series = series
		}
		if !ok {
			logger.Warn().Str("line", line).Msg("valid line is missing its expiration")
			fields.Expire = testExpire
			fields.hasExp = false
			continue
		}

		expires, err := ParseDDHHMM(expire, reference)
		if err != nil {
			logger.Warn().Err(err).Str("line", line).Msg("failed to parse expiration")
			fields.hasExp = false
		} else {
			fields.expires = expires
			fields.hasExp = true
		}
		if len(expire) >= 2 {
			fields.Expire = expire[:2] + "-" + expire[2:]
		} else {
			fields.Expire = testExpire
		}
	}

	return fields
}

func token(items []string, i int) (string, bool) {
	if i >= len(items) {
		return "", false
	}
	return items[i], true
}
