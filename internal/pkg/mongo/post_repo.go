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

// PostFilter 列表查询条件，零值字段不参与过滤
type PostFilter struct {
	Status   string
	AuthorID string
	Category string
	Tag      string
}

type PostRepo interface {
	Create(ctx context.Context, post *PostModel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*PostModel, error)
	GetBySlug(ctx context.Context, slug string) (*PostModel, error)
	SlugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter PostFilter, limit, offset int64) ([]*PostModel, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error
	DecFieldFloor(ctx context.Context, id primitive.ObjectID, field string) error
	SetField(ctx context.Context, id primitive.ObjectID, field string, value any) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// Create 插入新帖子，回填生成的 ObjectID
func (s *postRepoImpl) Create(ctx context.Context, post *PostModel) error {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*PostModel, error) {
	var post PostModel
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) GetBySlug(ctx context.Context, slug string) (*PostModel, error) {
	var post PostModel
	err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SlugTaken 检查 slug 是否已被其他帖子占用
func (s *postRepoImpl) SlugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 分页获取帖子列表 (按创建时间倒序)
func (s *postRepoImpl) List(ctx context.Context, filter PostFilter, limit, offset int64) ([]*PostModel, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

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

	var list []*PostModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateFields 按字段集部分更新，刷新 updated_at
func (s *postRepoImpl) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *postRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncField 单字段计数增量，依赖存储层 $inc 的原子性
func (s *postRepoImpl) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// DecFieldFloor 计数减一，但不允许降到 0 以下
func (s *postRepoImpl) DecFieldFloor(ctx context.Context, id primitive.ObjectID, field string) error {
	filter := bson.M{"_id": id, field: bson.M{"$gt": 0}}
	_, err := s.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: -1}})
	return err
}

// SetField 直接写入计数终值（校准任务用）
func (s *postRepoImpl) SetField(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	return err
}
