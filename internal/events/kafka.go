package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	dErrors "polisflow/pkg/domain-errors"
)

// KafkaSink produces lifecycle events to a Kafka topic, keyed by document ID
// so each document's events stay ordered within a partition. It is a
// write-only Store: reading the stream back is a consumer concern.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.DocumentID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event: %w", err)
	}
	return nil
}

func (s *KafkaSink) ListByDocument(context.Context, string) ([]Event, error) {
	return nil, dErrors.New(dErrors.CodeBadRequest, "kafka sink is write-only; consume the topic instead")
}

// Close flushes pending produces and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}

var _ Store = (*KafkaSink)(nil)
