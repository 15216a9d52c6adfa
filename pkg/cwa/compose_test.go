package cwa

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOffice = Office{CWSU: "ZAB", KCWSU: "KZAB", AWIPSNode: "ABQ", Zone: time.UTC}
	testNow    = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	testEnd    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

const testHeader = "FAUS21 KZAB 011000 \nZAB1 CWA 011000 \n"

func newTestComposer() *Composer {
	return NewComposer(testOffice, clockwork.NewFakeClockAt(testNow), nil)
}

func TestComposeThunderstormMinimal(t *testing.T) {
	sel := Selection{
		Hazard:    HazardThunderstorm,
		ProductID: "CWA1",
		FromLine:  "FROM 30W ZAB",
		End:       testEnd,
		Thunderstorm: &Thunderstorm{
			Type:      "TS",
			Intensity: "---",
			Direction: "---",
			Speed:     MovLTL,
			TopsFrom:  LevelTo,
			TopsTo:    "200",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)

	assert.Equal(t, "ABQCWA1", result.ProductID)
	assert.Equal(t, Issuance{Number: 1, Reset: true}, result.Issuance)
	assert.Equal(t, 101, result.SeriesID)
	// Tops at or above 180 render as flight levels, so 200 reads FL200.
	assert.Equal(t, testHeader+
		"ZAB CWA 101 VALID UNTIL 011200 \n"+
		"FROM 30W ZAB\n"+
		"LINE TS. MOV LTL TOPS TO FL200.\n\n= \n", result.Text)

	// The next product continues the sequence
	prior := &Prior{Text: result.Text, Inserted: testNow, Reference: testNow}
	next, err := newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Equal(t, 102, next.SeriesID)
	assert.Contains(t, next.Text, "ZAB CWA 102 VALID UNTIL 011200 \n")
}

func TestComposeThunderstormFull(t *testing.T) {
	sel := Selection{
		Hazard:    HazardThunderstorm,
		ProductID: "CWA1",
		VORs:      "ABQ-ELP-ABQ",
		Drawing:   Drawing{Type: DrawingLine, Width: 10},
		StateIDs:  "NM AZ",
		End:       testEnd,
		Thunderstorm: &Thunderstorm{
			Type:           "TSRA",
			Intensity:      "HVY",
			Direction:      "270",
			Speed:          "025",
			TopsFrom:       "250",
			TopsTo:         "450",
			Estimated:      true,
			Developing:     true,
			Embedded:       true,
			Hail:           true,
			Conditions:     ConditionsContinuing,
			Aircraft:       true,
			AdditionalInfo: "12C",
			NoUpdate:       true,
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, testHeader+
		"ZAB CWA 101 VALID UNTIL 011200 \n"+
		"FROM ABQ-ELP\n"+
		"DVLPG LINE EMBD SEV TSRA 10NM WIDE WITH HVY PCPN. MOV FROM 27025KT TOPS EST FL250-FL450."+
		" LARGE HAIL POSS. CONDS CONTG BYD 011200Z. RPRTD BY AIRCRAFT."+
		" THIS IS ADDN INFO TO CONVECTIVE SIGMET 12C. NO UPDT AFT 011200Z. NM AZ\n\n= \n", result.Text)
}

func TestComposeThunderstormIsolatedOverVOR(t *testing.T) {
	sel := Selection{
		Hazard:    HazardThunderstorm,
		ProductID: "CWA1",
		VORs:      "ABQ",
		Drawing:   Drawing{Type: DrawingIsolated, Width: 15},
		End:       testEnd,
		Thunderstorm: &Thunderstorm{
			Type:     "TSRA",
			Speed:    MovLTL,
			TopsFrom: LevelAbove,
			TopsTo:   "300",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "\nOVR ABQ\nISOL TSRA DIAM 15NM. MOV LTL TOPS ABV FL300.")
}

func TestComposeThunderstormInvalidTops(t *testing.T) {
	sel := Selection{
		Hazard:    HazardThunderstorm,
		ProductID: "CWA1",
		FromLine:  "FROM ABQ",
		Thunderstorm: &Thunderstorm{
			Type:     "TS",
			TopsFrom: "300",
			TopsTo:   "250",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "The Tops values 250/300 are invalid.")
}

func TestComposeIFR(t *testing.T) {
	sel := Selection{
		Hazard:    HazardIFRLIFR,
		ProductID: "CWA2",
		FromLine:  "FROM ABQ-ELP-TUS-ABQ",
		Drawing:   Drawing{Type: DrawingArea},
		End:       testEnd,
		IFR: &IFR{
			Developing:     true,
			Coverage:       "SCT",
			Flight:         "IFR/LIFR",
			CeilingFrom:    "AOB",
			CeilingTo:      "005",
			VisibilityFrom: "1/2",
			VisibilityTo:   "3SM",
			Obstructions:   []string{"SS", "br", "FG"},
			Conditions:     ConditionsContinuing,
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, "FAUS22 KZAB 011000 \nZAB2 CWA 011000 \n"+
		"ZAB CWA 201 VALID UNTIL 011200 \n"+
		"FROM ABQ-ELP-TUS-ABQ\n"+
		"DVLPG AREA SCT IFR/LIFR CONDS. CIGS AOB 005. VIS 1/2-3SM BR/FG/SS. CONDS CONTG BYD 011200Z.\n\n= \n", result.Text)

	sel.IFR.Obstructions = nil
	_, err = newTestComposer().Compose(sel, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please select one or more of the visibility options: BR, FG, HZ, DZ, RA, SN, FU, DU, SS")
}

func TestComposeAreaOnly(t *testing.T) {
	sel := Selection{
		Hazard:    HazardTurbLLWS,
		ProductID: "CWA3",
		FromLine:  "FROM ABQ-ELP",
		Drawing:   Drawing{Type: DrawingLine, Width: 10},
		Turbulence: &Turbulence{
			Frequency: "OCNL",
			Intensity: "MOD",
			From:      LevelSurface,
			To:        "100",
		},
	}

	_, err := newTestComposer().Compose(sel, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Area only")
}

func TestComposeTurbulence(t *testing.T) {
	sel := Selection{
		Hazard:    HazardTurbLLWS,
		ProductID: "CWA3",
		FromLine:  "FROM ABQ-ELP-TUS-ABQ",
		Drawing:   Drawing{Type: DrawingArea},
		End:       testEnd,
		Turbulence: &Turbulence{
			Frequency: "FQT",
			Intensity: "MOD/SEV",
			From:      "080",
			To:        "240",
			LLWS:      true,
			Aircraft:  true,
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.True(t, len(result.Text) > 0)
	assert.Contains(t, result.Text, "\nFROM ABQ-ELP-TUS-ABQ\nAREA FQT MOD/SEV TURB 080-FL240 AND LLWS RPRTD BY AIRCRAFT.\n\n= \n")

	sel.Turbulence.To = "060"
	_, err = newTestComposer().Compose(sel, nil)
	assert.True(t, IsValidation(err))
}

func TestComposeIcing(t *testing.T) {
	sel := Selection{
		Hazard:    HazardIcingFRZA,
		ProductID: "CWA4",
		FromLine:  "FROM ABQ-ELP-TUS-ABQ",
		Drawing:   Drawing{Type: DrawingArea},
		StateIDs:  "NM",
		End:       testEnd,
		Icing: &Icing{
			Frequency:      "OCNL",
			Intensity:      "MOD",
			Type:           "RIME ICE",
			From:           LevelSurface,
			To:             "120",
			Conditions:     ConditionsImproving,
			AdditionalInfo: " 3 ",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "\nAREA OCNL MOD RIME ICE BLW 120 CONDS IMPR BY 011200Z. THIS IS ADDN INFO TO AIRMET ZULU 3 NM\n\n= \n")
}

func TestComposeDust(t *testing.T) {
	sel := Selection{
		Hazard:    HazardBLDUBLSA,
		ProductID: "CWA5",
		VORs:      "ABQ",
		Drawing:   Drawing{Type: DrawingIsolated, Width: 10},
		End:       testEnd,
		Dust: &Dust{
			Type:           "BLDU",
			Direction:      "270",
			Gust:           "30-40 KTS",
			VisibilityFrom: "AOB",
			VisibilityTo:   "1/2",
			Spreading:      "SPRDG",
			Heading:        "EWD",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "ZAB CWA 501 VALID UNTIL 011200 \n"+
		"OVR ABQ\n"+
		"BLDU WITH SFC WNDS MOV FROM 270 GUSTS 30-40 KTS\n"+
		"VIS AOB 1/2SM\n"+
		"CONDS SPRDG EWD.\n\n= \n")

	sel.Drawing = Drawing{Type: DrawingArea}
	sel.VORs = "ABQ-ELP-TUS-ABQ"
	sel.Dust.VisibilityFrom = "1/4"
	result, err = newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "FROM ABQ-ELP-TUS-ABQ\nAREA BLDU WITH SFC WNDS MOV FROM 270 GUSTS 30-40 KTS\nVIS 1/4-1/2SM\n")

	sel.Drawing = Drawing{Type: DrawingLine, Width: 5}
	_, err = newTestComposer().Compose(sel, nil)
	assert.True(t, IsValidation(err))
}

func TestComposeVolcano(t *testing.T) {
	sel := Selection{
		Hazard:    HazardVolcano,
		ProductID: "CWA6",
		FromLine:  "FROM 20SW ANC",
		End:       testEnd,
		Volcano: &Volcano{
			Name:       "Redoubt",
			Lat:        60.48,
			Lon:        -152.74,
			Status:     Erupting,
			Ash:        "Satellite & Radar",
			Estimated:  true,
			Tops:       "300",
			PlumeDir:   "NE",
			PlumeSpeed: "25 KT",
			Reach:      "ANC",
			Within:     "3 HOURS",
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "ZAB CWA 601 VALID UNTIL 011200 \n"+
		"FROM 20SW ANC\n"+
		"REDOUBT VOLCANO AT 60.48 LAT -152.74 LON CONTINUES TO ERUPT.\n"+
		"ASH IS APPARENT ON SATELLITE AND NEXRAD RADAR.\n"+
		"ASH TOPS ARE ESTIMATED TO FL300.\n"+
		"PLUME IS MOVING NE AT 25 KT.\n"+
		"PUFF MODELS INDICATE ASH WILL REACH ANC WITHIN 3 HOURS.\n"+
		"THIS PRODUCT IS VALID UNTIL 011200\n"+
		"OR UNTIL A VOLCANIC ASH SIGMET AND/OR VAA IS ISSUED.\n\n= \n")

	sel.Volcano.Ash = "Webcam"
	sel.Volcano.PlumeSpeed = MovLTL
	sel.Volcano.Reach = ""
	result, err = newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "ASH IS APPARENT ON WEBCAM.\n")
	assert.Contains(t, result.Text, "PLUME IS MOV LTL.\nTHIS PRODUCT")
}

func TestComposeCancel(t *testing.T) {
	prior := &Prior{
		Text:      testHeader + "ZAB CWA 101 VALID UNTIL 011200 \nFROM 30W ZAB\nLINE TS. MOV LTL TOPS TO FL200.\n\n= \n",
		Inserted:  testNow.Add(-time.Hour),
		Reference: testNow.Add(-time.Hour),
	}
	sel := Selection{
		Hazard:    HazardCanMan,
		ProductID: "CWA1",
		End:       testEnd,
		Cancel:    &Cancel{Cancel: true, NoUpdate: true},
	}

	result, err := newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Equal(t, testHeader+
		"ZAB CWA 102 VALID UNTIL 011200 \n"+
		"CANCEL ZAB CWA 101. \n"+
		"NO UPDT AFT 011200Z. \n\n= \n", result.Text)

	sel.Cancel = &Cancel{SeeSigmet: "12C"}
	sel.FromLine = "FROM 30W ZAB"
	result, err = newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "\nFROM 30W ZAB\nSEE CONVECTIVE SIGMET 12C\n\n= \n")
}

func TestComposeMIS(t *testing.T) {
	prior := &Prior{
		Text:      "FAUS20 KZAB 010800 \nZAB MIS 03 VALID 010800-011000Z \n... FOR ATC PLANNING PURPOSES ONLY...\n\n\n= \n",
		Inserted:  time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		Reference: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	sel := Selection{
		Hazard:    HazardMIS,
		ProductID: "CWS",
		MIS:       &MIS{DurationHours: 2, Cancel: true, NoUpdate: true},
	}

	result, err := newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Equal(t, "FAUS20 KZAB 011000 \n"+
		"ZAB MIS 04 VALID 011000-011200Z \n"+
		"... FOR ATC PLANNING PURPOSES ONLY...\n"+
		"CANCEL ZAB MIS 03. NO UPDT AFT 011200Z.\n\n\n\n= \n", result.Text)
	assert.Equal(t, testEnd, result.End)

	sel.Correction = true
	sel.MIS = &MIS{DurationHours: 2}
	result, err = newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "ZAB MIS 03 VALID 011000-011200Z COR \n")

	sel.MIS = &MIS{DurationHours: 5}
	_, err = newTestComposer().Compose(sel, prior)
	assert.True(t, IsValidation(err))
}

func TestComposeMISCorrectionUnnumberedPrior(t *testing.T) {
	prior := &Prior{
		Text:      "FAUS20 KZAB 010900 \nZAB MIS 100 VALID 010900-011100Z \n... FOR ATC PLANNING PURPOSES ONLY...\n\n\n= \n",
		Inserted:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Reference: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	sel := Selection{
		Hazard:     HazardMIS,
		ProductID:  "CWS",
		Correction: true,
		MIS:        &MIS{DurationHours: 2},
	}

	result, err := newTestComposer().Compose(sel, prior)
	require.NoError(t, err)
	assert.Equal(t, Issuance{Number: 1}, result.Issuance)
	assert.Contains(t, result.Text, "ZAB MIS 01 VALID 011000-011200Z COR \n")
}

func TestComposeFromLineOverVOR(t *testing.T) {
	volcano := &Volcano{
		Name:       "Redoubt",
		Lat:        60.48,
		Lon:        -152.74,
		Status:     Erupting,
		Ash:        "Webcam",
		Tops:       "300",
		PlumeSpeed: MovLTL,
	}

	tests := []struct {
		name     string
		fromLine string
		expected string
	}{
		{"single VOR", "ANC", "OVR ANC"},
		{"four chars", "ANCX", "ANCX"},
		{"two chars", "AN", "AN"},
		{"full line", "FROM 20SW ANC", "FROM 20SW ANC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{Hazard: HazardVolcano, ProductID: "CWA6", FromLine: tt.fromLine, End: testEnd, Volcano: volcano}
			result, err := newTestComposer().Compose(sel, nil)
			require.NoError(t, err)
			assert.Contains(t, result.Text, "VALID UNTIL 011200 \n"+tt.expected+"\nREDOUBT VOLCANO")

			sel = Selection{Hazard: HazardCanMan, ProductID: "CWA1", FromLine: tt.fromLine, End: testEnd, Cancel: &Cancel{}}
			result, err = newTestComposer().Compose(sel, nil)
			require.NoError(t, err)
			assert.Contains(t, result.Text, "VALID UNTIL 011200 \n"+tt.expected+"\n\n= \n")
		})
	}
}

func TestComposeCWSState(t *testing.T) {
	sel := Selection{
		Hazard:    HazardMIS,
		ProductID: "CWS1",
		VORs:      "ABQ-ELP",
		Drawing:   Drawing{Type: DrawingLine, Width: 20},
		StateIDs:  "NM",
		End:       testEnd,
		CWS: &CWSState{
			Type:      "TSRA",
			Intensity: "MOD",
			Direction: "240",
			Speed:     "020",
			TopsFrom:  LevelNone,
			TopsTo:    "450",
			ContAfter: 14,
		},
	}

	result, err := newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, "FAUS20 KZAB 011000 \nZAB1 CWA 011000 \n"+
		"ZAB CWA 101 VALID UNTIL 011200 \n"+
		"FROM ABQ-ELP\n"+
		"AREA...20 NM WIDE... TSRA WITH MOD PCPN. MOV FROM 24020KT.\n"+
		"TOPS TO FL450. CONT AFTER 14Z.  NM\n\n= \n", result.Text)

	sel.CWS.TopsFrom = "250"
	sel.Drawing = Drawing{Type: DrawingIsolated, Width: 10}
	sel.VORs = "ELP"
	result, err = newTestComposer().Compose(sel, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "\nOVR ELP\nTSRA...DIAM 10NM... WITH MOD PCPN. MOV FROM 24020KT.\nTOPS FL250-450. CONT AFTER 14Z.")
}

func TestComposeMissingVORs(t *testing.T) {
	sel := Selection{
		Hazard:       HazardThunderstorm,
		ProductID:    "CWA1",
		Thunderstorm: &Thunderstorm{Type: "TS", TopsFrom: LevelTo, TopsTo: "200"},
	}

	_, err := newTestComposer().Compose(sel, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No VORs Drawn")
}

func TestComposeDefaultTimes(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 45, 30, 0, time.UTC))
	composer := NewComposer(testOffice, clock, nil)

	sel := Selection{
		Hazard:    HazardCanMan,
		ProductID: "CWA1",
		FromLine:  "FROM ABQ",
		Cancel:    &Cancel{},
	}
	result, err := composer.Compose(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 45, 0, 0, time.UTC), result.Start)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), result.End)
	assert.Contains(t, result.Text, "FAUS21 KZAB 011045 \n")
}
