package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/metdatasystem/cwa/internal/generator"
	"github.com/metdatasystem/cwa/internal/textdb"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOffice = cwa.Office{CWSU: "ZAB", KCWSU: "KZAB", AWIPSNode: "ABQ", Zone: time.UTC, Operational: true}

func TestResultFromText(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 30, 0, time.UTC)
	text := "FAUS21 KZAB 011000 \nZAB1 CWA 011000 \nZAB CWA 103 VALID UNTIL 011200 \nFROM ABQ\n\n= \n"

	result := resultFromText(testOffice, "CWAAB1", text, now)
	assert.Equal(t, "ABQCWAAB1", result.ProductID)
	assert.Equal(t, 103, result.SeriesID)
	assert.Equal(t, 3, result.Issuance.Number)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), result.Start)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), result.End)

	result = resultFromText(testOffice, "CWAAB1", "  \n", now)
	assert.Empty(t, result.Text)
	assert.Equal(t, time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC), result.End)
}

func TestWriteStatus(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	writeStatus(&buf, []cwa.Status{
		{ProductID: "ABQCWAAB1", Series: "101", Expire: "01-1200", Expiry: cwa.ExpiryActive},
		{ProductID: "ABQCWAAB2", Series: "   ", Expire: "        ", Expiry: cwa.ExpiryInactive},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PRODUCT"))
	assert.Equal(t, "ABQCWAAB1    101    01-1200  ACTIVE", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "INACTIVE"))
}

func TestExpiryColor(t *testing.T) {
	assert.Equal(t, activeColor, expiryColor(cwa.ExpiryActive))
	assert.Equal(t, expiringColor, expiryColor(cwa.ExpiryExpiring))
	assert.Equal(t, expiredColor, expiryColor(cwa.ExpiryExpired))
	assert.Equal(t, inactiveColor, expiryColor(cwa.ExpiryInactive))
}

func TestStatusHandler(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	store := textdb.NewMemoryStore(clock)
	service := generator.New(cwa.NewComposer(testOffice, clock, nil), store, nil, generator.NewHealth(prometheus.NewRegistry()))

	rec := httptest.NewRecorder()
	statusHandler(service)(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses []cwa.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	assert.Len(t, statuses, cwa.MaxCWA+1)

	rec = httptest.NewRecorder()
	statusHandler(service)(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReadSelectionStdin(t *testing.T) {
	sel, err := readSelection("-", strings.NewReader("hazard: MIS\nproduct: CWSZAB\nmis:\n  duration_hours: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, cwa.HazardMIS, sel.Hazard)
	require.NotNil(t, sel.MIS)
	assert.Equal(t, 2, sel.MIS.DurationHours)
}
