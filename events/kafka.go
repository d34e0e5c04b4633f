package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// wireEvent is the JSON layout consumers of the change topic decode.
type wireEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       interface{}       `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher writes asynchronously; delivery failures are logged from the
// writer's completion callback.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				utils.ErrorLogger.WithError(err).
					WithField("messages", len(messages)).
					Error("kafka delivery failed")
			}
		},
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

func (k *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := encodeMessage(k.topic, ev)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

func encodeMessage(topic string, ev Event) (kafka.Message, error) {
	payload := wireEvent{
		Entity:     ev.Entity,
		Action:     ev.Action,
		ResourceID: ev.ResourceID,
		Topic:      topic,
		Data:       ev.Data,
		Timestamp:  ev.Timestamp,
	}
	if ev.Owner != "" {
		payload.Metadata = map[string]string{"owner": ev.Owner}
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.Entity + ":" + ev.ResourceID),
		Value: value,
		Time:  ev.Timestamp,
	}, nil
}
