package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Well-known topic names.
const (
	TopicAccountReactivated     = "account.reactivated"
	TopicPasswordResetRequested = "password.reset_requested"
	TopicPasswordChanged        = "password.changed"
	TopicReservationCancelled   = "reservation.cancelled"
	TopicRideStarted            = "ride.started"
	TopicRideEnded              = "ride.ended"
)

// Client wraps Kafka operations.
type Client struct {
	brokers []string
}

// NewClient returns a Client connected to the given brokers.
func NewClient(brokers []string) *Client {
	return &Client{brokers: brokers}
}

// EnsureTopics creates topics if they don't already exist (with retry).
func (c *Client) EnsureTopics(ctx context.Context, topics ...string) error {
	for attempt := 1; attempt <= 20; attempt++ {
		conn, err := kafkago.DialContext(ctx, "tcp", c.brokers[0])
		if err != nil {
			log.Printf("Kafka not ready, retrying in 3s... (%d/20)", attempt)
			time.Sleep(3 * time.Second)
			continue
		}

		configs := make([]kafkago.TopicConfig, len(topics))
		for i, t := range topics {
			configs[i] = kafkago.TopicConfig{
				Topic:             t,
				NumPartitions:     3,
				ReplicationFactor: 1,
			}
		}

		err = conn.CreateTopics(configs...)
		conn.Close()
		if err != nil {
			log.Printf("Topic creation returned (may already exist): %v", err)
		}
		log.Println("Kafka topics ensured")
		return nil
	}
	return fmt.Errorf("kafka: could not connect after 20 attempts")
}

// Publish sends a JSON-serialised message to a topic. Delivery is
// fire-and-forget from the caller's point of view; no consumer lives in
// this service.
func (c *Client) Publish(ctx context.Context, topic, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	w := &kafkago.Writer{
		Addr:     kafkago.TCP(c.brokers...),
		Topic:    topic,
		Balancer: &kafkago.LeastBytes{},
	}
	defer w.Close()

	return w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: data,
	})
}
