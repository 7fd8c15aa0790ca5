package events

import (
	"context"

	"fleetrent/pkg/kafka"
	"fleetrent/pkg/model"
)

// Publisher emits booking domain events. Publishing is best effort: the
// booking service logs failures and never fails the request over one.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event model.BookingEvent) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.UnitID).
		WithValue(event).
		WithEventType(event.Type).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	return nil
}
