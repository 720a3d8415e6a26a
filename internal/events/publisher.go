package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tokscout/internal/domain"
)

// KafkaPublisher forwards each freshly computed resolution to the results
// topic. Satisfies validate.Publisher.
type KafkaPublisher struct {
	producer *Producer
	log      *slog.Logger
}

func NewKafkaPublisher(producer *Producer, log *slog.Logger) *KafkaPublisher {
	if log == nil {
		log = slog.Default()
	}

	return &KafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (k *KafkaPublisher) PublishResolution(ctx context.Context, res domain.Resolution) error {
	key := fmt.Sprintf("%s-%s", res.Username, uuid.NewString())

	if err := k.producer.PublishEvent(ctx, key, res); err != nil {
		return fmt.Errorf("failed to publish resolution: %w", err)
	}

	k.log.Debug("resolution published",
		"username", res.Username,
		"topic", k.producer.Topic(),
	)

	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
