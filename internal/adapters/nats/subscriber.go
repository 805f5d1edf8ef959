package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/pkg/logging"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := ensureStream(js); err != nil {
		conn.Close()
		return nil, err
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeSearchCompleted delivers every search-completed event to handler.
// Undecodable payloads are terminated; handler errors are redelivered up to
// three times.
func (s *Subscriber) SubscribeSearchCompleted(ctx context.Context, handler func(ctx context.Context, event *domain.SearchCompletedEvent) error) error {
	sub, err := s.js.Subscribe(SubjectSearchCompleted, func(msg *nats.Msg) {
		event, err := DecodeSearchCompleted(msg.Data)
		if err != nil {
			logging.FromContext(ctx).Warn("dropping malformed search event", "error", err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, event); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durableSearchRecorder),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// DecodeSearchCompleted parses an event payload.
func DecodeSearchCompleted(data []byte) (*domain.SearchCompletedEvent, error) {
	var event domain.SearchCompletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode search event: %w", err)
	}
	if event.Business == "" || event.City == "" {
		return nil, fmt.Errorf("decode search event: %w", domain.ErrMalformedResponse)
	}
	return &event, nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
