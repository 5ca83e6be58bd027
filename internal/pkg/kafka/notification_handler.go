package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationHandler 消费评论事件，落地站内通知
type NotificationHandler struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationHandler(repo mongo.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: repo,
	}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("comment events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("comment events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event CommentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal comment event error", "err", err)
		// 消息体损坏无法重试，跳过
		return nil
	}

	// 自己触发的动作不生成通知
	if event.ReceiverID == "" || event.ReceiverID == event.SenderID {
		return nil
	}

	notifyType := s.resolveType(&event)
	if notifyType == 0 {
		log.WarnContext(ctx, "unknown comment event type", "type", event.Type)
		return nil
	}

	notification := &mongo.NotificationModel{
		ReceiverID: event.ReceiverID,
		SenderID:   event.SenderID,
		SenderName: event.SenderName,
		Type:       notifyType,
		TargetID:   event.CommentID,
		Preview:    event.Preview,
		IsRead:     false,
		CreatedAt:  event.CreatedAt,
	}

	return s.notificationRepo.Create(ctx, notification)
}

func (s *NotificationHandler) resolveType(event *CommentEvent) int8 {
	switch event.Type {
	case EventCommentCreated:
		if event.IsReply {
			return consts.NotifyTypeReply
		}
		return consts.NotifyTypeComment
	case EventCommentLiked:
		return consts.NotifyTypeCommentLike
	default:
		return 0
	}
}
