package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// SearchIndexHandler 消费帖子事件，维护 ES 索引
// 只有已发布的帖子进索引，其余状态一律移除
type SearchIndexHandler struct {
	postESRepo es.PostRepo
}

func NewSearchIndexHandler(repo es.PostRepo) *SearchIndexHandler {
	return &SearchIndexHandler{
		postESRepo: repo,
	}
}

func (s *SearchIndexHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("search index consumer setup")
	return nil
}

func (s *SearchIndexHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("search index consumer cleanup")
	return nil
}

func (s *SearchIndexHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("post events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("post events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *SearchIndexHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event PostEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal post event error", "err", err)
		return nil
	}

	if event.Type == EventPostDeleted || event.Status != consts.PostStatusPublished {
		return s.postESRepo.DeletePost(ctx, event.PostID)
	}

	doc := &es.PostES{
		ID:           event.PostID,
		Slug:         event.Slug,
		Title:        event.Title,
		Excerpt:      event.Excerpt,
		PlainContent: event.PlainContent,
		Tags:         event.Tags,
		Category:     event.Category,
		Status:       event.Status,
		AuthorID:     event.AuthorID,
		AuthorName:   event.AuthorName,
		CreatedAt:    event.CreatedAt,
	}
	return s.postESRepo.IndexPost(ctx, doc)
}
