package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/sentiscope/internal/models"
)

// Publisher announces completed analysis runs to downstream consumers.
type Publisher interface {
	PublishAnalysisCompleted(ctx context.Context, event models.AnalysisCompletedEvent) error
	Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishAnalysisCompleted(context.Context, models.AnalysisCompletedEvent) error {
	return nil
}

func (NoopPublisher) Close() {}

// NewPublisher returns a Kafka-backed publisher, or a NoopPublisher when cfg has no broker.
func NewPublisher(cfg KafkaConfig) (Publisher, error) {
	if !cfg.Enabled() {
		slog.Info("[KafkaClient] No broker configured, result events disabled")
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg)
}

type KafkaPublisher struct {
	producer      *kafka.Producer
	topic         string
	transactional bool
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.topic()))

	cm := &kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
	}
	if cfg.TransactionalID != "" {
		_ = cm.SetKey("transactional.id", cfg.TransactionalID)
	}

	p, err := kafka.NewProducer(cm)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if cfg.TransactionalID != "" {
		if err := p.InitTransactions(context.Background()); err != nil {
			p.Close()
			return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
		}
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &KafkaPublisher{
		producer:      p,
		topic:         cfg.topic(),
		transactional: cfg.TransactionalID != "",
	}, nil
}

// PublishAnalysisCompleted sends one event keyed by run id and waits for its delivery report.
func (k *KafkaPublisher) PublishAnalysisCompleted(ctx context.Context, event models.AnalysisCompletedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaClient] marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.RunID),
		Value:          value,
	}

	if k.transactional {
		if err := k.producer.BeginTransaction(); err != nil {
			return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
		}
	}

	if err := k.produce(ctx, msg); err != nil {
		if k.transactional {
			if abortErr := k.producer.AbortTransaction(ctx); abortErr != nil {
				return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
			}
		}
		return err
	}

	if k.transactional {
		if err := k.producer.CommitTransaction(ctx); err != nil {
			return fmt.Errorf("[KafkaClient] failed to commit transaction: %w", err)
		}
	}

	slog.Info("[KafkaClient] Published analysis result event",
		slog.String("topic", k.topic),
		slog.String("run_id", event.RunID))
	return nil
}

func (k *KafkaPublisher) produce(ctx context.Context, msg *kafka.Message) error {
	delivery := make(chan kafka.Event, 1)

	var err error
	for i := 0; i < MAX_RETRIES; i++ {
		err = k.producer.Produce(msg, delivery)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(RETRY_DELAY)
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] produce after %d attempts: %w", MAX_RETRIES, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
		}
		return nil
	}
}

func (k *KafkaPublisher) Close() {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := k.producer.Flush(int(FLUSH_TIMEOUT.Milliseconds())); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	k.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}
