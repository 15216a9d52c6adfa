package cwa

import (
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestSequencerNext(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	dayBefore := time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		series   string
		inserted *time.Time
		reset    bool
		hazard   Hazard
		expected Issuance
	}{
		{"no prior", "   ", nil, false, HazardThunderstorm, Issuance{1, true}},
		{"forced reset", "105", &sameDay, true, HazardThunderstorm, Issuance{1, true}},
		{"increments", "105", &sameDay, false, HazardThunderstorm, Issuance{6, false}},
		{"wraps after 99", "199", &sameDay, false, HazardThunderstorm, Issuance{1, true}},
		{"new local day", "105", &dayBefore, false, HazardIFRLIFR, Issuance{1, true}},
		{"new year", "105", &lastYear, false, HazardIFRLIFR, Issuance{1, true}},
		{"cancel ignores day", "105", &dayBefore, false, HazardCanMan, Issuance{6, false}},
		{"cancel still wraps", "99", &dayBefore, false, HazardCanMan, Issuance{1, true}},
		{"blank series", "   ", &sameDay, false, HazardTurbLLWS, Issuance{1, false}},
		{"garbled series", "1O5", &sameDay, false, HazardTurbLLWS, Issuance{1, false}},
	}

	s := NewSequencer(clockwork.NewFakeClockAt(now), time.UTC)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, s.Next(c.series, c.inserted, c.reset, c.hazard))
		})
	}
}

func TestSequencerNoPriorEveryHazard(t *testing.T) {
	s := NewSequencer(clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)), time.UTC)
	for _, h := range Hazards() {
		assert.Equal(t, Issuance{Number: 1, Reset: true}, s.Next("105", nil, false, h), string(h))
	}
}

func TestSequencerIncrementsWithinDay(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inserted := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSequencer(clockwork.NewFakeClockAt(now), time.UTC)

	for n := 1; n <= 98; n++ {
		series := strconv.Itoa(300 + n)
		assert.Equal(t, Issuance{Number: n + 1}, s.Next(series, &inserted, false, HazardIcingFRZA), series)
		assert.Equal(t, Issuance{Number: n + 1}, s.Next(series, &inserted, false, HazardCanMan), series)
	}
}

func TestReusedIssuance(t *testing.T) {
	for _, series := range []int{0, 100, 600} {
		_, ok := reusedIssuance(series)
		assert.False(t, ok, series)
	}

	issuance, ok := reusedIssuance(199)
	assert.True(t, ok)
	assert.Equal(t, Issuance{Number: 99}, issuance)

	issuance, ok = reusedIssuance(7)
	assert.True(t, ok)
	assert.Equal(t, Issuance{Number: 7}, issuance)
}

func TestSequencerLocalDay(t *testing.T) {
	// 16:00 and 18:00 MST on the 1st fall on different UTC days
	inserted := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC))

	local := NewSequencer(clock, Timezones["MST"])
	assert.Equal(t, Issuance{Number: 4}, local.Next("103", &inserted, false, HazardThunderstorm))

	utc := NewSequencer(clock, time.UTC)
	assert.Equal(t, Issuance{Number: 1, Reset: true}, utc.Next("103", &inserted, false, HazardThunderstorm))
}

func TestSequencerNextForPrior(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	s := NewSequencer(clock, time.UTC)

	assert.Equal(t, Issuance{Number: 1, Reset: true}, s.NextForPrior(nil, "ZAB", false, HazardThunderstorm))

	prior := &Prior{
		Text:     "FAUS21 KZAB 010900 \nZAB1 CWA 010900 \nZAB CWA 103 VALID UNTIL 011100 \n",
		Inserted: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, Issuance{Number: 4}, s.NextForPrior(prior, "ZAB", false, HazardThunderstorm))
}

func TestSeriesID(t *testing.T) {
	assert.Equal(t, 105, SeriesID("ABQCWA1", 5))
	assert.Equal(t, 699, SeriesID("ABQCWA6", 99))
	assert.Equal(t, 7, SeriesID("ABQCWS", 7))
	assert.Equal(t, 0, PhenomenonDigit(""))
}
