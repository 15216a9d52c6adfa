package cwa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfficeHeadings(t *testing.T) {
	office := Office{CWSU: "ZAB", KCWSU: "KZAB", AWIPSNode: "ABQ"}

	wmo, header := office.CWAHeadings("ABQCWAAB3")
	assert.Equal(t, "FAUS23 KZAB", wmo)
	assert.Equal(t, "ZAB3 CWA", header)

	wmo, header = office.CWSHeadings("ABQCWS1")
	assert.Equal(t, "FAUS20 KZAB", wmo)
	assert.Equal(t, "ZAB1 CWA", header)
	assert.Equal(t, "FAUS20 KZAB", office.MISHeading())

	alaska := Office{CWSU: "ZAN", KCWSU: "PAZA"}
	wmo, _ = alaska.CWAHeadings("AFCCWAAN1")
	assert.Equal(t, "FAAK21 PAZA", wmo)
	assert.Equal(t, "FAAK20 PAZA", alaska.MISHeading())

	custom := Office{CWSU: "ZAB", KCWSU: "KZAB", CWATTAAII: "WAUS4", CWSTTAAII: "FAUS30 "}
	wmo, _ = custom.CWAHeadings("CWA2")
	assert.Equal(t, "WAUS42 KZAB", wmo)
	assert.Equal(t, "FAUS30 KZAB", custom.MISHeading())
}

func TestOfficeIdentifiers(t *testing.T) {
	office := Office{CWSU: "ZAB", KCWSU: "KZAB", AWIPSNode: "ABQ"}
	assert.Equal(t, "ABQCWAAB1", office.RetrievalID("CWAAB1"))
	assert.Equal(t, "ABQCWAAB1", office.TransmitID("CWAAB1"))
	assert.Equal(t, []string{"WRKAB1", "WRKAB2", "WRKAB3", "WRKAB4", "WRKAB5", "WRKAB6", "WRKZAB"}, office.PILs())

	office.Operational = true
	assert.Equal(t, "KZABCWAAB1", office.TransmitID("CWAAB1"))
	assert.Equal(t, []string{"CWAAB1", "CWAAB2", "CWAAB3", "CWAAB4", "CWAAB5", "CWAAB6", "CWSZAB"}, office.PILs())
}
