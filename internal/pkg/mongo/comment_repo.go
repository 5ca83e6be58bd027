package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CommentSortNewest  = "newest"
	CommentSortOldest  = "oldest"
	CommentSortPopular = "popular"
)

type CommentRepo interface {
	Create(ctx context.Context, comment *CommentModel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*CommentModel, error)
	ListByPost(ctx context.Context, postID primitive.ObjectID, statuses []string, sort string, limit, offset int64) ([]*CommentModel, int64, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string, edit CommentEdit) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SoftDelete(ctx context.Context, id primitive.ObjectID, placeholder string) error
	AddLike(ctx context.Context, id primitive.ObjectID, like CommentLike) (bool, error)
	RemoveLike(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
	CollectSubtreeIDs(ctx context.Context, rootID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountByPost(ctx context.Context, postID primitive.ObjectID, statuses []string) (int64, error)
}

type commentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{
		col: db.Collection("comments"),
	}
}

func (s *commentRepoImpl) Create(ctx context.Context, comment *CommentModel) error {
	res, err := s.col.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

func (s *commentRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*CommentModel, error) {
	var comment CommentModel
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPost 分页获取帖子下的评论，popular 排序需要聚合点赞数
func (s *commentRepoImpl) ListByPost(ctx context.Context, postID primitive.ObjectID, statuses []string, sort string, limit, offset int64) ([]*CommentModel, int64, error) {
	query := bson.M{"post_id": postID}
	if len(statuses) > 0 {
		query["status"] = bson.M{"$in": statuses}
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	var list []*CommentModel
	if sort == CommentSortPopular {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: query}},
			bson.D{{Key: "$addFields", Value: bson.M{"like_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}}}}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "like_count", Value: -1}, {Key: "created_at", Value: -1}}}},
			bson.D{{Key: "$skip", Value: offset}},
			bson.D{{Key: "$limit", Value: limit}},
		}
		cursor, err := s.col.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, 0, err
		}
		defer func() {
			_ = cursor.Close(ctx)
		}()
		if err = cursor.All(ctx, &list); err != nil {
			return nil, 0, err
		}
		return list, total, nil
	}

	order := -1
	if sort == CommentSortOldest {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: order}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateContent 更新正文并把旧版本追加到编辑历史
func (s *commentRepoImpl) UpdateContent(ctx context.Context, id primitive.ObjectID, content string, edit CommentEdit) error {
	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"edited":     true,
			"updated_at": time.Now(),
		},
		"$push": bson.M{"edit_history": edit},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *commentRepoImpl) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SoftDelete 内容替换为占位文案并标记 deleted，保留子树结构
func (s *commentRepoImpl) SoftDelete(ctx context.Context, id primitive.ObjectID, placeholder string) error {
	update := bson.M{
		"$set": bson.M{
			"content":    placeholder,
			"status":     "deleted",
			"updated_at": time.Now(),
		},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddLike 仅当该用户尚未点赞时追加，返回是否实际写入
func (s *commentRepoImpl) AddLike(ctx context.Context, id primitive.ObjectID, like CommentLike) (bool, error) {
	filter := bson.M{
		"_id":           id,
		"likes.user_id": bson.M{"$ne": like.UserID},
	}
	result, err := s.col.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"likes": like}})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *commentRepoImpl) RemoveLike(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// CollectSubtreeIDs 逐层展开 parent_id 收集整棵回复树 (含根节点)
func (s *commentRepoImpl) CollectSubtreeIDs(ctx context.Context, rootID primitive.ObjectID) ([]primitive.ObjectID, error) {
	all := []primitive.ObjectID{rootID}
	frontier := []primitive.ObjectID{rootID}

	for len(frontier) > 0 {
		cursor, err := s.col.Find(ctx, bson.M{"parent_id": bson.M{"$in": frontier}},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return nil, err
		}
		var children []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err = cursor.All(ctx, &children); err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			all = append(all, child.ID)
			frontier = append(frontier, child.ID)
		}
	}
	return all, nil
}

func (s *commentRepoImpl) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountByPost statuses 为空时统计全部状态
func (s *commentRepoImpl) CountByPost(ctx context.Context, postID primitive.ObjectID, statuses []string) (int64, error) {
	query := bson.M{"post_id": postID}
	if len(statuses) > 0 {
		query["status"] = bson.M{"$in": statuses}
	}
	return s.col.CountDocuments(ctx, query)
}
