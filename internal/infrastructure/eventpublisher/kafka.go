package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

// KafkaPublisher publishes events to a Kafka topic keyed by account ID, so
// every event for an account lands on the same partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaConfig returns the producer configuration used for event streaming.
func NewKafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "gobank"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return cfg
}

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewKafkaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish sends the event and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AccountID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send event %s: %w", event.EventID, err)
	}

	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
