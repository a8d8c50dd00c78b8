package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/timada-org/pikav/internal/cluster"
	"github.com/timada-org/pikav/internal/publisher"
	"github.com/timada-org/pikav/internal/topic"
	"github.com/timada-org/pikav/pb"
)

// DefaultSubject is the NATS subject producers publish event batches to.
const DefaultSubject = "pikav.events"

// InboundEvent is one element of a producer's JSON batch.
type InboundEvent struct {
	UserID   string `json:"user_id"`
	Topic    string `json:"topic"`
	Name     string `json:"name"`
	Data     any    `json:"data"`
	Metadata any    `json:"metadata"`
}

// Source bridges a NATS subject into the bus. Each message is a JSON array of
// events and is handled like an inbound cluster publish with propagation on:
// delivered to local sessions and queued for every peer.
type Source struct {
	conn  *nats.Conn
	sub   *nats.Subscription
	pub   *publisher.Publisher
	peers []*cluster.Peer
	log   *slog.Logger
}

// NewSource connects to NATS with automatic reconnection and subscribes to
// subject. Extra nats.Option values (e.g. disconnect handlers) can be
// appended.
func NewSource(url, subject string, pub *publisher.Publisher, peers []*cluster.Peer, log *slog.Logger, opts ...nats.Option) (*Source, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	defaults := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	s := &Source{conn: nc, pub: pub, peers: peers, log: log}

	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		s.handle(msg.Data)
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	// Flush ensures the subscription is registered on the server before
	// returning, so that messages published on other connections are routed.
	if err := nc.Flush(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}
	s.sub = sub

	return s, nil
}

func (s *Source) handle(data []byte) {
	var batch []InboundEvent
	if err := json.Unmarshal(data, &batch); err != nil {
		s.log.Error("decoding event batch", "error", err)
		return
	}

	messages := make([]publisher.Message, 0, len(batch))
	forwarded := make([]*pb.Event, 0, len(batch))
	for _, ev := range batch {
		if _, err := topic.NewName(ev.Topic); err != nil {
			s.log.Warn("skipping event with invalid topic", "topic", ev.Topic, "error", err)
			continue
		}
		messages = append(messages, publisher.Message{
			UserID: ev.UserID,
			Event: publisher.Event{
				Topic:    ev.Topic,
				Name:     ev.Name,
				Data:     ev.Data,
				Metadata: ev.Metadata,
			},
		})
		forwarded = append(forwarded, &pb.Event{
			UserId:   ev.UserID,
			Topic:    ev.Topic,
			Name:     ev.Name,
			Data:     cluster.ToValue(ev.Data),
			Metadata: cluster.ToValue(ev.Metadata),
		})
	}

	s.pub.Publish(messages)

	for _, peer := range s.peers {
		peer.Publish(forwarded)
	}
}

// Close unsubscribes and closes the connection.
func (s *Source) Close() error {
	if err := s.sub.Unsubscribe(); err != nil {
		s.conn.Close()
		return err
	}
	s.conn.Close()
	return nil
}
