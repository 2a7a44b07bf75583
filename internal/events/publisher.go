package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	movement "equiptrack/internal/movement/domain"
	"equiptrack/pkg/logger"
)

// Publisher wraps a Kafka producer broadcasting audit events
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer, brokers: brokers}, nil
}

// MovementRecorded broadcasts a committed movement entry. Runs in its own
// goroutine so the recording path never waits on the broker.
func (p *Publisher) MovementRecorded(entry movement.MovementLog) {
	go func() {
		if err := p.publish(context.Background(), entry); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("action", entry.Action).
				Msg("Failed to publish movement event")
		}
	}()
}

func (p *Publisher) publish(ctx context.Context, entry movement.MovementLog) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.movement_recorded",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicMovementRecorded),
			attribute.String("event.type", EventTypeMovementRecorded),
			attribute.String("movement.action", entry.Action),
		),
	)
	defer span.End()

	event := MovementRecordedEvent{
		EventID:    fmt.Sprintf("evt_%d", time.Now().UnixNano()),
		EventType:  EventTypeMovementRecorded,
		Timestamp:  time.Now(),
		MovementID: entry.ID,
		Datetime:   entry.Datetime,
		User:       entry.User,
		Action:     entry.Action,
		ItemName:   entry.ItemName,
		Quantity:   entry.Quantity,
		FromTable:  entry.FromTable,
		ToTable:    entry.ToTable,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(EventTypeMovementRecorded)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicMovementRecorded,
		Key:     sarama.StringEncoder(fmt.Sprintf("movement_%d", entry.ID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
