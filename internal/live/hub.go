package live

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/rs/zerolog/log"
)

// StatusSource reports the current status of the office's products.
type StatusSource func(ctx context.Context) ([]cwa.Status, error)

// Hub streams product expiry status to websocket clients. Status is polled on
// an interval and pushed whenever it changes.
type Hub struct {
	register     chan *client
	unregister   chan *client
	subscription chan *subscription
	refresh      chan struct{}
	done         chan struct{}

	connections map[*client]bool
	latest      []cwa.Status

	wsUpgrader websocket.Upgrader
	source     StatusSource
	clock      clockwork.Clock
	interval   time.Duration
}

func NewHub(source StatusSource, clock clockwork.Clock, interval time.Duration) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Hub{
		register:     make(chan *client),
		unregister:   make(chan *client),
		subscription: make(chan *subscription),
		refresh:      make(chan struct{}, 1),
		done:         make(chan struct{}),
		connections:  map[*client]bool{},
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		source:   source,
		clock:    clock,
		interval: interval,
	}
}

// Refresh asks the hub to poll status now instead of waiting for the interval.
func (hub *Hub) Refresh() {
	select {
	case hub.refresh <- struct{}{}:
	default:
	}
}

func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
		return
	}

	// Upgrade the connection
	ws, err := hub.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	// Register the connection
	c := newClient(ws, hub)
	select {
	case hub.register <- c:
	case <-hub.done:
		c.close()
		return
	}

	go c.listenWrite()
	c.listenRead()
}

// Run serves the hub until ctx is done.
func (hub *Hub) Run(ctx context.Context) {
	ticker := hub.clock.NewTicker(hub.interval)
	defer ticker.Stop()
	defer close(hub.done)

	hub.poll(ctx)

	log.Info().Dur("interval", hub.interval).Msg("hub running")
	for {
		select {
		case <-ctx.Done():
			for c := range hub.connections {
				hub.unregisterConnection(c)
			}
			return
		case c := <-hub.register:
			hub.connections[c] = true
			hub.sendTo(c, EnvelopeInitial, hub.latest)
		case c := <-hub.unregister:
			hub.unregisterConnection(c)
		case s := <-hub.subscription:
			hub.subscribeClient(s)
		case <-ticker.Chan():
			hub.poll(ctx)
		case <-hub.refresh:
			hub.poll(ctx)
		}
	}
}

func (hub *Hub) unregisterConnection(c *client) {
	if _, ok := hub.connections[c]; ok {
		delete(hub.connections, c)
		close(c.send)
	}
}

func (hub *Hub) subscribeClient(s *subscription) {
	if _, ok := hub.connections[s.client]; !ok {
		return
	}

	for _, topic := range s.Topics {
		if s.Type == UNSUBSCRIBE {
			delete(s.client.subscriptions, topic)
			log.Debug().Str("topic", topic).Msg("unsubscribed from topic")
		} else {
			s.client.subscriptions[topic] = struct{}{}
			log.Debug().Str("topic", topic).Msg("subscribed to topic")
		}
	}
	hub.sendTo(s.client, EnvelopeInitial, hub.latest)
}

func (hub *Hub) poll(ctx context.Context) {
	statuses, err := hub.source(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to poll product status")
		return
	}
	if reflect.DeepEqual(statuses, hub.latest) {
		return
	}
	hub.latest = statuses

	for c := range hub.connections {
		hub.sendTo(c, EnvelopeUpdate, statuses)
	}
}

// sendTo queues the statuses the client subscribed to. Clients too slow to
// keep up are dropped.
func (hub *Hub) sendTo(c *client, envelopeType string, statuses []cwa.Status) {
	filtered := []cwa.Status{}
	for _, s := range statuses {
		if c.wants(s.ProductID) {
			filtered = append(filtered, s)
		}
	}

	data, err := Envelope{Type: envelopeType, Timestamp: hub.clock.Now().UTC(), Data: filtered}.Marshal()
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal status envelope")
		return
	}

	select {
	case c.send <- data:
	default:
		log.Warn().Msg("client send buffer full, dropping connection")
		hub.unregisterConnection(c)
	}
}
