package ingest

import (
	"log"

	"github.com/nats-io/nats.go"

	"github.com/santanu-atta03/gps-tracker/fleet"
)

// SourceMetrics receives ingestion-source counters. A nil implementation
// is allowed.
type SourceMetrics interface {
	PayloadRejected(source string)
	SourceConnected(source string, connected bool)
}

// Subscriber consumes JSON position messages from a NATS subject and
// feeds them into the fleet store.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	store   *fleet.Store
	metrics SourceMetrics
}

// NewSubscriber connects to NATS and subscribes to subject. Each message
// is parsed with ParsePosition; malformed messages are logged and
// dropped without interrupting the subscription.
func NewSubscriber(url, subject string, store *fleet.Store, m SourceMetrics) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.Name("gps-tracker"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SourceConnected("nats", false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SourceConnected("nats", true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SourceConnected("nats", false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}

	s := &Subscriber{nc: nc, store: store, metrics: m}
	sub, err := nc.Subscribe(subject, s.handle)
	if err != nil {
		nc.Close()
		return nil, err
	}
	s.sub = sub
	if m != nil {
		m.SourceConnected("nats", true)
	}
	log.Printf("nats subscribed to %s", subject)
	return s, nil
}

func (s *Subscriber) handle(msg *nats.Msg) {
	up, err := ParsePosition(msg.Data)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PayloadRejected("nats")
		}
		log.Printf("nats payload dropped: %v", err)
		return
	}
	s.store.Ingest(up.DeviceID, fleet.TimestampedPoint{Point: up.Point, Timestamp: up.Timestamp}, up.Meta)
}

// Close drains the subscription and closes the connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		_ = s.nc.Drain()
		s.nc.Close()
	}
}
