package activitylog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events as JSON, keyed by user id so one user's events stay
// ordered within a partition.
type Kafka struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafka returns a publisher writing to topic on brokers.
func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Kafka{writer: w, now: func() time.Time { return time.Now().UTC() }}
}

func (k *Kafka) LogActivity(ctx context.Context, userID int64, kind string, fields map[string]any) error {
	return k.publish(ctx, ports.ActivityEvent{UserID: userID, Kind: kind, Fields: fields, Timestamp: k.now()})
}

func (k *Kafka) LogWorkoutSession(ctx context.Context, s *domain.WorkoutSession) error {
	return k.publish(ctx, sessionEvent(s, k.now()))
}

// Close flushes pending writes.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

func (k *Kafka) publish(ctx context.Context, evt ports.ActivityEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode activity event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.UserID, 10)),
		Value: payload,
		Time:  evt.Timestamp,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish activity event: %w", err)
	}
	return nil
}
