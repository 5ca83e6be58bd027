package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, notification *NotificationModel) error
	List(ctx context.Context, receiverID string, limit, offset int64) ([]*NotificationModel, int64, error)
	UnreadCount(ctx context.Context, receiverID string) (int64, error)
	MarkRead(ctx context.Context, receiverID string, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, receiverID string) error
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

func (s *notificationRepoImpl) Create(ctx context.Context, notification *NotificationModel) error {
	res, err := s.col.InsertOne(ctx, notification)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}
	return nil
}

// List 按时间倒序分页获取用户的通知
func (s *notificationRepoImpl) List(ctx context.Context, receiverID string, limit, offset int64) ([]*NotificationModel, int64, error) {
	query := bson.M{"receiver_id": receiverID}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*NotificationModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *notificationRepoImpl) UnreadCount(ctx context.Context, receiverID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
}

// MarkRead 带 receiver_id 过滤，防止标记他人的通知
func (s *notificationRepoImpl) MarkRead(ctx context.Context, receiverID string, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "receiver_id": receiverID}
	result, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *notificationRepoImpl) MarkAllRead(ctx context.Context, receiverID string) error {
	filter := bson.M{"receiver_id": receiverID, "is_read": false}
	_, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}
