package cwa

import (
	"strconv"
	"strings"
	"time"
)

// Reissue rebuilds the latest product with new times, keeping its series and
// hazard text. Used to correct or extend a product without new selections.
func (c *Composer) Reissue(productID string, prior *Prior, start, end time.Time, cor bool) *Result {
	if start.IsZero() {
		start = c.Clock.Now()
	}
	start = start.UTC().Truncate(time.Minute)
	if end.IsZero() {
		end = DefaultEnd(start)
	}
	end = ResolveEnd(start, end.UTC())

	retrievalID := c.Office.RetrievalID(productID)
	text := ""
	if prior != nil {
		text = prior.Text
	}
	lines := strings.Split(text, "\n")

	series := 1
	if len(lines) > 2 {
		items := strings.Fields(lines[2])
		if len(items) > 3 {
			n, err := strconv.Atoi(items[2])
			if err != nil {
				c.logger.Error().Err(err).Str("line", lines[2]).Msg("failed to parse prior series")
			} else {
				series = n
			}
		}
	}

	wmo, header := c.Office.CWAHeadings(retrievalID)
	startText, endText := FormatDDHHMM(start), FormatDDHHMM(end)

	var b strings.Builder
	b.WriteString(wmo + " " + startText + "\n")
	b.WriteString(header + " " + startText)
	if cor {
		b.WriteString(" COR")
	}
	b.WriteString("\n")
	b.WriteString(c.Office.CWSU + " CWA " + strconv.Itoa(series) + " VALID UNTIL " + endText + "Z\n")
	b.WriteString(strings.Join(lines[min(3, len(lines)):], "\n"))

	issuance, ok := reusedIssuance(series)
	if !ok {
		issuance = Issuance{Number: 1}
	}

	return &Result{
		ProductID: retrievalID,
		Text:      b.String(),
		Issuance:  issuance,
		SeriesID:  series,
		Start:     start,
		End:       end,
	}
}
