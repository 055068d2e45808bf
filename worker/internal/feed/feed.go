// Package feed publishes leaderboard updates to Kafka for downstream
// consumers. The feed is optional and best-effort: the Rank Store stays
// authoritative and a failed send never fails the work item.
package feed

import (
	"encoding/json"
	"time"

	"github.com/IBM/rotisserie/orchestrator/pkg"
	"github.com/IBM/rotisserie/worker/internal/entity"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// Connect dials the brokers and returns a producer for the alive-updates
// topic.
func Connect(brokers []string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 2

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: producer,
		topic:    pkg.TopicAliveUpdates,
		logger:   logger.Named("feed"),
	}, nil
}

// Publish sends one update. Errors are logged, not returned; the
// leaderboard write already happened.
func (r *Producer) Publish(stream string, alive int) {
	update := entity.Update{
		Stream:    stream,
		Alive:     alive,
		Timestamp: time.Now().UnixMilli(),
	}

	res, err := json.Marshal(update)
	if err != nil {
		r.logger.Error("marshal update", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: r.topic,
		Key:   sarama.StringEncoder(stream),
		Value: sarama.StringEncoder(res),
	}
	if _, _, err := r.producer.SendMessage(msg); err != nil {
		r.logger.Error("send update",
			zap.String("stream", stream),
			zap.Error(err))
	}
}

func (r *Producer) Close() error {
	return r.producer.Close()
}
