package cwa

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Selection is a snapshot of everything the forecaster chose for one product.
// Exactly one of the hazard sections is read, the one matching Hazard.
type Selection struct {
	Hazard        Hazard    `yaml:"hazard"`
	ProductID     string    `yaml:"product"` // Product identifier without node, e.g. CWA1
	Start         time.Time `yaml:"start"`   // Zero means now
	End           time.Time `yaml:"end"`     // Zero means the top of the next hour
	VORs          string    `yaml:"vors"`
	FromLine      string    `yaml:"from_line"` // Used as is instead of VORs when set
	Drawing       Drawing   `yaml:"drawing"`
	StateIDs      string    `yaml:"state_ids"` // Computed from the drawing when empty
	Correction    bool      `yaml:"correction"`
	ResetIssuance bool      `yaml:"reset_issuance"`

	Thunderstorm *Thunderstorm `yaml:"thunderstorm,omitempty"`
	IFR          *IFR          `yaml:"ifr,omitempty"`
	Turbulence   *Turbulence   `yaml:"turbulence,omitempty"`
	Icing        *Icing        `yaml:"icing,omitempty"`
	Dust         *Dust         `yaml:"dust,omitempty"`
	Volcano      *Volcano      `yaml:"volcano,omitempty"`
	Cancel       *Cancel       `yaml:"cancel,omitempty"`
	MIS          *MIS          `yaml:"mis,omitempty"`
	CWS          *CWSState     `yaml:"cws,omitempty"`
}

// Assembler returns the section matching the selection's hazard.
func (s Selection) Assembler() (Assembler, error) {
	var a Assembler
	switch s.Hazard {
	case HazardThunderstorm:
		if s.Thunderstorm != nil {
			a = s.Thunderstorm
		}
	case HazardIFRLIFR:
		if s.IFR != nil {
			a = s.IFR
		}
	case HazardTurbLLWS:
		if s.Turbulence != nil {
			a = s.Turbulence
		}
	case HazardIcingFRZA:
		if s.Icing != nil {
			a = s.Icing
		}
	case HazardBLDUBLSA:
		if s.Dust != nil {
			a = s.Dust
		}
	case HazardVolcano:
		if s.Volcano != nil {
			a = s.Volcano
		}
	case HazardCanMan:
		if s.Cancel != nil {
			a = s.Cancel
		}
	case HazardMIS:
		if s.CWS != nil {
			a = s.CWS
		} else if s.MIS != nil {
			a = s.MIS
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHazard, string(s.Hazard))
	}

	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPayload, s.Hazard.Name())
	}
	return a, nil
}

// DecodeSelection reads a YAML selection document.
func DecodeSelection(r io.Reader) (Selection, error) {
	var s Selection
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return Selection{}, fmt.Errorf("could not decode selection: %w", err)
	}
	return s, nil
}
