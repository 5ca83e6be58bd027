package service

import (
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/mongo"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePostRepo 内存版帖子存储，按服务层观察到的行为实现
type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]*mongo.PostModel
	createErr error // 非 nil 时下一次 Create 返回该错误
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*mongo.PostModel)}
}

func (f *fakePostRepo) Create(ctx context.Context, post *mongo.PostModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	post.ID = primitive.NewObjectID()
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*mongo.PostModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*mongo.PostModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, post := range f.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) SlugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, post := range f.posts {
		if post.Slug == slug && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) List(ctx context.Context, filter mongo.PostFilter, limit, offset int64) ([]*mongo.PostModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]*mongo.PostModel, 0)
	for _, post := range f.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !contains(post.Tags, filter.Tag) {
			continue
		}
		clone := *post
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if offset >= total {
		return []*mongo.PostModel{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakePostRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			post.Title = v.(string)
		case "slug":
			post.Slug = v.(string)
		case "excerpt":
			post.Excerpt = v.(string)
		case "content":
			post.Content = v.([]mongo.ContentBlock)
		case "featured_image":
			post.FeaturedImage = v.(string)
		case "tags":
			post.Tags = v.([]string)
		case "category":
			post.Category = v.(string)
		case "status":
			post.Status = v.(string)
		case "meta_title":
			post.MetaTitle = v.(string)
		case "meta_description":
			post.MetaDescription = v.(string)
		}
	}
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	switch field {
	case "views":
		post.Views += delta
	case "likes":
		post.Likes += delta
	case "comments":
		post.Comments += delta
	}
	return nil
}

func (f *fakePostRepo) DecFieldFloor(ctx context.Context, id primitive.ObjectID, field string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	switch field {
	case "views":
		if post.Views > 0 {
			post.Views--
		}
	case "likes":
		if post.Likes > 0 {
			post.Likes--
		}
	case "comments":
		if post.Comments > 0 {
			post.Comments--
		}
	}
	return nil
}

func (f *fakePostRepo) SetField(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	if field == "comments" {
		post.Comments = value.(int64)
	}
	return nil
}

// fakeCommentRepo 内存版评论存储
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*mongo.CommentModel
	order    []primitive.ObjectID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*mongo.CommentModel)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *mongo.CommentModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	clone := *comment
	f.comments[comment.ID] = &clone
	f.order = append(f.order, comment.ID)
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*mongo.CommentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	clone := *comment
	return &clone, nil
}

func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID primitive.ObjectID, statuses []string, sort string, limit, offset int64) ([]*mongo.CommentModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]*mongo.CommentModel, 0)
	for _, id := range f.order {
		comment, ok := f.comments[id]
		if !ok || comment.PostID != postID {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, comment.Status) {
			continue
		}
		clone := *comment
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if offset >= total {
		return []*mongo.CommentModel{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeCommentRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, content string, edit mongo.CommentEdit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment := f.comments[id]
	comment.Content = content
	comment.Edited = true
	comment.EditHistory = append(comment.EditHistory, edit)
	return nil
}

func (f *fakeCommentRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[id].Status = status
	return nil
}

func (f *fakeCommentRepo) SoftDelete(ctx context.Context, id primitive.ObjectID, placeholder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment := f.comments[id]
	comment.Content = placeholder
	comment.Status = "deleted"
	return nil
}

func (f *fakeCommentRepo) AddLike(ctx context.Context, id primitive.ObjectID, like mongo.CommentLike) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment := f.comments[id]
	for _, l := range comment.Likes {
		if l.UserID == like.UserID {
			return false, nil
		}
	}
	comment.Likes = append(comment.Likes, like)
	return true, nil
}

func (f *fakeCommentRepo) RemoveLike(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment := f.comments[id]
	for i, l := range comment.Likes {
		if l.UserID == userID {
			comment.Likes = append(comment.Likes[:i], comment.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommentRepo) CollectSubtreeIDs(ctx context.Context, rootID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []primitive.ObjectID{rootID}
	frontier := []primitive.ObjectID{rootID}
	for len(frontier) > 0 {
		next := make([]primitive.ObjectID, 0)
		for _, id := range f.order {
			comment, ok := f.comments[id]
			if !ok || comment.ParentID == nil {
				continue
			}
			for _, p := range frontier {
				if *comment.ParentID == p {
					all = append(all, id)
					next = append(next, id)
					break
				}
			}
		}
		frontier = next
	}
	return all, nil
}

func (f *fakeCommentRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for _, id := range ids {
		if _, ok := f.comments[id]; ok {
			delete(f.comments, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCommentRepo) CountByPost(ctx context.Context, postID primitive.ObjectID, statuses []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, comment := range f.comments {
		if comment.PostID != postID {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, comment.Status) {
			continue
		}
		count++
	}
	return count, nil
}

// fakePostESRepo 记录索引调用
type fakePostESRepo struct {
	mu      sync.Mutex
	indexed map[string]*es.PostES
}

func newFakePostESRepo() *fakePostESRepo {
	return &fakePostESRepo{indexed: make(map[string]*es.PostES)}
}

func (f *fakePostESRepo) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*es.PostES, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make([]*es.PostES, 0)
	for _, doc := range f.indexed {
		results = append(results, doc)
	}
	return results, nil
}

func (f *fakePostESRepo) GetLatestPosts(ctx context.Context, from, size int) ([]*es.PostES, error) {
	return f.SearchPosts(ctx, "", from, size)
}

func (f *fakePostESRepo) IndexPost(ctx context.Context, post *es.PostES) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[post.ID] = post
	return nil
}

func (f *fakePostESRepo) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.indexed, id)
	return nil
}

// fakeProducer 记录发布的事件
type fakeProducer struct {
	mu            sync.Mutex
	commentEvents []*kafka.CommentEvent
	postEvents    []*kafka.PostEvent
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{}
}

func (f *fakeProducer) PublishCommentEvent(ctx context.Context, event *kafka.CommentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commentEvents = append(f.commentEvents, event)
	return nil
}

func (f *fakeProducer) PublishPostEvent(ctx context.Context, event *kafka.PostEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postEvents = append(f.postEvents, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
