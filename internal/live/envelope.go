package live

import (
	"encoding/json"
	"time"

	"github.com/metdatasystem/cwa/pkg/cwa"
)

const (
	EnvelopeInitial = "INIT"
	EnvelopeUpdate  = "UPDATE"
)

// Envelope carries a status snapshot to websocket clients.
type Envelope struct {
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Data      []cwa.Status `json:"data"`
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
