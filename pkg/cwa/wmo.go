package cwa

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Terminates every product body.
const FinalLine = "\n\n= \n"

// WMO abbreviated heading of a stored product.
type WMO struct {
	Original string    `json:"original"`
	Datatype string    `json:"datatype"`
	Office   string    `json:"office"`
	Issued   time.Time `json:"issued"` // Only day, hour, minute
	BBB      string    `json:"bbb"`
}

var ErrNoWMO = errors.New("could not find WMO line")

const WMORegexp = `([A-Z]{4}[0-9]{2})\s([A-Z]{4})\s([0-9]{6})( [A-Z]{3})?`

var wmoRegexp = regexp.MustCompile(WMORegexp)

// ParseWMO finds and splits the WMO heading of a product.
func ParseWMO(text string) (WMO, error) {
	match := wmoRegexp.FindStringSubmatch(text)
	if match == nil {
		return WMO{}, ErrNoWMO
	}

	issued, err := time.Parse(DDHHMM, match[3])
	if err != nil {
		return WMO{}, errors.New("could not parse WMO issued datetime: " + err.Error())
	}

	return WMO{
		Original: match[0],
		Datatype: match[1],
		Office:   match[2],
		Issued:   issued,
		BBB:      strings.TrimSpace(match[4]),
	}, nil
}

// BuildHeader renders the WMO heading line followed by the product header line.
//
//	FAUS21 KZAB 011000
//	ZAB1 CWA 011000 COR
func BuildHeader(wmoID, start, header string, cor bool) string {
	var b strings.Builder
	b.WriteString(wmoID + " " + start + " \n")
	b.WriteString(header + " " + start)
	if cor {
		b.WriteString(" COR")
	}
	b.WriteString(" \n")
	return b.String()
}

// BuildValidLine renders "<cwsu> CWA <series> VALID UNTIL <end>".
func BuildValidLine(cwsuID, end string, seriesID int) string {
	return cwsuID + " CWA " + strconv.Itoa(seriesID) + " VALID UNTIL " + end + " \n"
}
