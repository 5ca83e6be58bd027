package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	List(ctx context.Context, userID string, page, pageSize int) (*dto.NotificationPageDTO, error)
	UnreadCount(ctx context.Context, userID string) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

func (s *notificationServiceImpl) List(ctx context.Context, userID string, page, pageSize int) (*dto.NotificationPageDTO, error) {
	page = normalizePage(page)
	pageSize = normalizeLimit(pageSize, 20, 100)

	list, total, err := s.notificationRepo.List(ctx, userID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		log.ErrorContext(ctx, "list notifications error", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		items = append(items, &dto.NotificationDTO{
			ID:         n.ID.Hex(),
			SenderID:   n.SenderID,
			SenderName: n.SenderName,
			Type:       n.Type,
			TargetID:   n.TargetID,
			Preview:    n.Preview,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.NotificationPageDTO{List: items, Total: total}, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID string) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "count unread notifications error", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID string, notificationID string) error {
	oid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrParamInvalid
	}

	err = s.notificationRepo.MarkRead(ctx, userID, oid)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		log.ErrorContext(ctx, "mark notification read error", "id", notificationID, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		log.ErrorContext(ctx, "mark all notifications read error", "user_id", userID, "err", err)
		return UnExpectedError
	}
	return nil
}
