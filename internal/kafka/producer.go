package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"statchat-backend/config"
	"statchat-backend/internal/model"
)

// EventProducer emits usage events for processed questions. Emission is
// fire-and-forget; the request path never blocks on the broker.
type EventProducer interface {
	Emit(ctx context.Context, event model.QuestionEvent) error
	Close() error
}

type questionEventProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewQuestionEventProducer builds the Kafka producer, or a no-op when no
// brokers are configured.
func NewQuestionEventProducer(lc fx.Lifecycle, cfg *config.Config) EventProducer {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.EventTopic == "" {
		log.Info().Msg("Kafka brokers not configured, question events disabled")
		return noopProducer{}
	}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.EventTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: time.Second,
		Async:        true,
	})
	p := &questionEventProducer{
		writer: writer,
		topic:  cfg.Kafka.EventTopic,
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Kafka producer")
			return p.Close()
		},
	})
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.EventTopic).Msg("Kafka producer initialized")
	return p
}

func (p *questionEventProducer) Emit(ctx context.Context, event model.QuestionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to marshal question event")
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: value,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("Failed to write question event")
		return err
	}

	log.Debug().Str("event_id", event.ID).Str("topic", p.topic).Msg("Question event produced")
	return nil
}

func (p *questionEventProducer) Close() error {
	return p.writer.Close()
}

type noopProducer struct{}

func (noopProducer) Emit(context.Context, model.QuestionEvent) error { return nil }
func (noopProducer) Close() error                                    { return nil }
