package distribution

import (
	"encoding/json"
	"time"

	"github.com/metdatasystem/cwa/internal/textdb"
	"github.com/metdatasystem/cwa/pkg/cwa"
)

const (
	EventNew        = "NEW"
	EventCorrection = "CORRECTION"
	EventCancel     = "CANCEL"
)

// EventEnvelope wraps a product sent to downstream consumers.
type EventEnvelope struct {
	EventType string          `json:"event_type"`
	Product   string          `json:"product"` // Transmission identifier, e.g. KZABCWA1
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      *textdb.Product `json:"data"`
}

// NewEnvelope classifies the product and wraps it for sending.
func NewEnvelope(product *textdb.Product, timestamp time.Time) *EventEnvelope {
	eventType := EventNew
	switch {
	case product.BBB != "":
		eventType = EventCorrection
	case product.Hazard == cwa.HazardCanMan:
		eventType = EventCancel
	}
	return &EventEnvelope{
		EventType: eventType,
		Product:   product.TransmitID,
		ID:        product.ProductID,
		Timestamp: timestamp.UTC(),
		Data:      product,
	}
}

func (envelope EventEnvelope) Marshal() ([]byte, error) {
	return json.Marshal(envelope)
}
