package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentCountJob 校准帖子上的评论计数
// 评论增删走独立的增量更新，计数漂移由此任务兜底修正
type CommentCountJob struct {
	postRepo    mongo.PostRepo
	commentRepo mongo.CommentRepo
}

func NewCommentCountJob(postRepo mongo.PostRepo, commentRepo mongo.CommentRepo) *CommentCountJob {
	return &CommentCountJob{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *CommentCountJob) Run() {
	traceID := "job-comment-count-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.PostCommentCountDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.PostCommentCountDirtyKey, processingKey)
	if err != nil {
		return
	}

	postIDs, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get comment count dirty set error", "err", err)
		return
	}

	log.InfoContext(ctx, "start syncing post comment counts", "count", len(postIDs))

	successCount := 0
	for _, pid := range postIDs {
		oid, err := primitive.ObjectIDFromHex(pid)
		if err != nil {
			log.ErrorContext(ctx, "invalid post id in dirty set", "pid", pid)
			continue
		}

		count, err := s.commentRepo.CountByPost(ctx, oid, nil)
		if err != nil {
			log.ErrorContext(ctx, "count comments error", "pid", pid, "err", err)
			continue
		}

		err = s.postRepo.SetField(ctx, oid, "comments", count)
		if err != nil {
			log.ErrorContext(ctx, "sync comment count to post error", "pid", pid, "err", err)
			continue
		}
		successCount++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete comment count processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync post comment counts success",
		"total_count", len(postIDs),
		"success_count", successCount)
}
