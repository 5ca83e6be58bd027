package kafka

import (
	"Inkstone/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer 领域事件发布入口
type Producer interface {
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
	PublishPostEvent(ctx context.Context, event *PostEvent) error
	Close() error
}

type producerImpl struct {
	producer     sarama.SyncProducer
	commentTopic string
	postTopic    string
}

func NewProducer(cfg *config.Config) (Producer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		log.Error("Cannot Connect to Kafka", "err", err)
		return nil, err
	}

	return &producerImpl{
		producer:     p,
		commentTopic: cfg.KafkaCommentTopic.Topic,
		postTopic:    cfg.KafkaPostTopic.Topic,
	}, nil
}

// PublishCommentEvent 以 post_id 作分区键，保证同帖事件有序
func (s *producerImpl) PublishCommentEvent(ctx context.Context, event *CommentEvent) error {
	return s.send(s.commentTopic, event.PostID, event)
}

func (s *producerImpl) PublishPostEvent(ctx context.Context, event *PostEvent) error {
	return s.send(s.postTopic, event.PostID, event)
}

func (s *producerImpl) send(topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		log.Error("send message error", "topic", topic, "err", err)
		return err
	}

	log.Debug("message sent", "topic", topic, "partition", partition, "offset", offset)
	return nil
}

func (s *producerImpl) Close() error {
	return s.producer.Close()
}
