package cwa

import (
	"strconv"
	"strings"
	"time"
)

// MaxCWA is the number of CWA products an office issues under.
const MaxCWA = 6

// Office identifies the issuing Center Weather Service Unit.
type Office struct {
	CWSU        string         // Three letter CWSU identifier, e.g. ZAB
	KCWSU       string         // Four letter transmission identifier, e.g. KZAB
	AWIPSNode   string         // Text database node used for retrieval
	CWATTAAII   string         // Overrides the CWA WMO prefix when set
	CWSTTAAII   string         // Overrides the CWS/MIS WMO prefix when set
	Zone        *time.Location // Office local time, used for the daily issuance reset
	Operational bool
}

// Alaska products go out under the FAAK prefixes.
func (o Office) alaska() bool {
	return strings.EqualFold(o.CWSU, "ZAN")
}

func (o Office) cwaPrefix() string {
	if o.CWATTAAII != "" {
		return o.CWATTAAII
	}
	if o.alaska() {
		return "FAAK2"
	}
	return "FAUS2"
}

func (o Office) cwsPrefix() string {
	if o.CWSTTAAII != "" {
		return strings.TrimSpace(o.CWSTTAAII)
	}
	if o.alaska() {
		return "FAAK20"
	}
	return "FAUS20"
}

func (o Office) zone() *time.Location {
	if o.Zone == nil {
		return time.UTC
	}
	return o.Zone
}

// RetrievalID is the identifier prior products are looked up by.
func (o Office) RetrievalID(pil string) string {
	return o.AWIPSNode + pil
}

// TransmitID is the identifier a new product is stored and sent under.
// Practice products never leave the local node.
func (o Office) TransmitID(pil string) string {
	if o.Operational {
		return o.KCWSU + pil
	}
	return o.AWIPSNode + pil
}

// PILs lists the product identifiers the office issues under, the CWAs
// followed by the MIS. Practice offices issue everything under WRK.
//
//	CWAAB1 ... CWAAB6, CWSZAB
func (o Office) PILs() []string {
	cwaPIL, cwsPIL := "CWA", "CWS"
	if !o.Operational {
		cwaPIL, cwsPIL = "WRK", "WRK"
	}
	site := ""
	if len(o.CWSU) > 1 {
		site = o.CWSU[1:]
	}

	pils := make([]string, 0, MaxCWA+1)
	for i := 1; i <= MaxCWA; i++ {
		pils = append(pils, cwaPIL+site+strconv.Itoa(i))
	}
	return append(pils, cwsPIL+o.CWSU)
}

// CWAHeadings returns the WMO heading and product header for a CWA product.
//
//	FAUS21 KZAB
//	ZAB1 CWA
func (o Office) CWAHeadings(productID string) (wmo string, header string) {
	last := lastChar(productID)
	return o.cwaPrefix() + last + " " + o.KCWSU, o.CWSU + last + " CWA"
}

// CWSHeadings returns the headings for the state annotated CWS variant.
func (o Office) CWSHeadings(productID string) (wmo string, header string) {
	return o.cwsPrefix() + " " + o.KCWSU, o.CWSU + lastChar(productID) + " CWA"
}

// MISHeading is the WMO heading of the default MIS product.
func (o Office) MISHeading() string {
	return o.cwsPrefix() + " " + o.KCWSU
}

func lastChar(s string) string {
	if s == "" {
		return ""
	}
	return s[len(s)-1:]
}
