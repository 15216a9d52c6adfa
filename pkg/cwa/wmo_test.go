package cwa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeader(t *testing.T) {
	assert.Equal(t, "FAUS21 KZAB 011000 \nZAB1 CWA 011000 \n", BuildHeader("FAUS21 KZAB", "011000", "ZAB1 CWA", false))
	assert.Equal(t, "FAUS21 KZAB 011000 \nZAB1 CWA 011000 COR \n", BuildHeader("FAUS21 KZAB", "011000", "ZAB1 CWA", true))
}

func TestBuildValidLine(t *testing.T) {
	assert.Equal(t, "ZAB CWA 101 VALID UNTIL 011200 \n", BuildValidLine("ZAB", "011200", 101))
}

func TestParseWMO(t *testing.T) {
	wmo, err := ParseWMO("FAUS21 KZAB 011000 \nZAB1 CWA 011000 \n")
	require.NoError(t, err)
	assert.Equal(t, "FAUS21", wmo.Datatype)
	assert.Equal(t, "KZAB", wmo.Office)
	assert.Equal(t, 1, wmo.Issued.Day())
	assert.Equal(t, 10, wmo.Issued.Hour())
	assert.Equal(t, "", wmo.BBB)

	_, err = ParseWMO("ZAB CWA 101 VALID UNTIL 011200")
	assert.ErrorIs(t, err, ErrNoWMO)
}
