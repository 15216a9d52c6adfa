package cwa

import (
	"errors"
	"strings"
)

// Hazard is the phenomenon an advisory describes. It selects the body grammar
// and the issuance counter the product is numbered against.
type Hazard string

const (
	HazardThunderstorm Hazard = "THUNDERSTORM"
	HazardIFRLIFR      Hazard = "IFRLIFR"
	HazardTurbLLWS     Hazard = "TURBLLWS"
	HazardIcingFRZA    Hazard = "ICINGFRZA"
	HazardBLDUBLSA     Hazard = "BLDUBLSA"
	HazardVolcano      Hazard = "VOLCANO"
	HazardCanMan       Hazard = "CANMAN"
	HazardMIS          Hazard = "MIS"
)

var ErrUnknownHazard = errors.New("unknown hazard")

// Hazards in the order they are grouped in monthly reports.
var hazards = []Hazard{
	HazardThunderstorm,
	HazardIFRLIFR,
	HazardTurbLLWS,
	HazardIcingFRZA,
	HazardBLDUBLSA,
	HazardVolcano,
	HazardCanMan,
	HazardMIS,
}

var hazardNames = map[Hazard]string{
	HazardThunderstorm: "Thunderstorm",
	HazardIFRLIFR:      "IFR/LIFR",
	HazardTurbLLWS:     "Turb/LLWS",
	HazardIcingFRZA:    "Icing/FRZA",
	HazardBLDUBLSA:     "BLDU/BLSA",
	HazardVolcano:      "Volcano",
	HazardCanMan:       "Can/Man",
	HazardMIS:          "MIS",
}

// Hazards returns every hazard in report order.
func Hazards() []Hazard {
	out := make([]Hazard, len(hazards))
	copy(out, hazards)
	return out
}

// Name returns the display name of the hazard.
func (h Hazard) Name() string {
	if name, ok := hazardNames[h]; ok {
		return name
	}
	return string(h)
}

func (h Hazard) Valid() bool {
	_, ok := hazardNames[h]
	return ok
}

// ParseHazard accepts either the hazard tag or its display name.
func ParseHazard(s string) (Hazard, error) {
	s = strings.TrimSpace(s)
	for _, h := range hazards {
		if strings.EqualFold(s, string(h)) || strings.EqualFold(s, h.Name()) {
			return h, nil
		}
	}
	return "", ErrUnknownHazard
}

// UnmarshalText lets hazards be decoded from YAML and flags by tag or name.
func (h *Hazard) UnmarshalText(text []byte) error {
	parsed, err := ParseHazard(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
