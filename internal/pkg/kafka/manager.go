package kafka

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	notificationConsumer sarama.ConsumerGroup
	notificationHandler  sarama.ConsumerGroupHandler

	searchIndexConsumer sarama.ConsumerGroup
	searchIndexHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	notificationRepo mongo.NotificationRepo,
	postESRepo es.PostRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	notificationConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNotificationConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	notificationHandler := NewNotificationHandler(notificationRepo)

	searchIndexConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaSearchIndexConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	searchIndexHandler := NewSearchIndexHandler(postESRepo)

	return &ConsumerManager{
		notificationConsumer: notificationConsumer,
		notificationHandler:  notificationHandler,
		searchIndexConsumer:  searchIndexConsumer,
		searchIndexHandler:   searchIndexHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Notification Consumer
	go func() {
		topic := cfg.KafkaNotificationConsumer.Topic
		log.Info("Notification consumer started", "topic", topic)
		for {
			if err := m.notificationConsumer.Consume(ctx, []string{topic}, m.notificationHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Search Index Consumer
	go func() {
		topic := cfg.KafkaSearchIndexConsumer.Topic
		log.Info("Search index consumer started", "topic", topic)
		for {
			if err := m.searchIndexConsumer.Consume(ctx, []string{topic}, m.searchIndexHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	err := m.notificationConsumer.Close()
	if err != nil {
		log.Error("Failed to close notification consumer", "err", err)
	}
	err = m.searchIndexConsumer.Close()
	if err != nil {
		log.Error("Failed to close search index consumer", "err", err)
	}

	return nil
}
