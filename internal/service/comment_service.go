package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/sanitize"
	"Inkstone/internal/pkg/util"
	"context"
	log "log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentPreviewLength 通知里携带的评论预览长度
const CommentPreviewLength = 80

type CommentService interface {
	CreateComment(ctx context.Context, actor *Actor, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	ListComments(ctx context.Context, actor *Actor, query *dto.CommentListQueryDTO) (*dto.CommentPageDTO, error)
	EditComment(ctx context.Context, actor *Actor, commentID string, content string) (*dto.CommentDTO, error)
	LikeComment(ctx context.Context, actor *Actor, commentID string, like bool) (*dto.CommentLikeResultDTO, error)
	DeleteComment(ctx context.Context, actor *Actor, commentID string) error
	SetCommentStatus(ctx context.Context, actor *Actor, commentID string, status string) error
}

type commentServiceImpl struct {
	commentRepo mongo.CommentRepo
	postRepo    mongo.PostRepo
	producer    kafka.Producer
}

func NewCommentService(commentRepo mongo.CommentRepo, postRepo mongo.PostRepo, producer kafka.Producer) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		producer:    producer,
	}
}

// CreateComment 发表评论
// 命中垃圾词直接落库为 spam 状态，不向调用方报错
func (s *commentServiceImpl) CreateComment(ctx context.Context, actor *Actor, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	content := strings.TrimSpace(createDTO.Content)
	if content == "" || len([]rune(content)) > consts.MaxCommentLength {
		return nil, ErrCommentContentInvalid
	}

	postOID, err := primitive.ObjectIDFromHex(createDTO.PostID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetByID(ctx, postOID)
	if err != nil {
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	// 未发布帖子只允许作者自己留言
	if post.Status != consts.PostStatusPublished && !CanViewPost(actor, post) {
		return nil, ErrNoPermission
	}

	depth := 0
	var parentOID *primitive.ObjectID
	var parent *mongo.CommentModel
	if createDTO.ParentID != nil && *createDTO.ParentID != "" {
		oid, err := primitive.ObjectIDFromHex(*createDTO.ParentID)
		if err != nil {
			return nil, ErrParamInvalid
		}
		parent, err = s.commentRepo.GetByID(ctx, oid)
		if err != nil {
			return nil, UnExpectedError
		}
		if parent == nil || parent.PostID != postOID {
			return nil, ErrCommentNotFound
		}
		if parent.Status != consts.CommentStatusApproved {
			return nil, ErrCommentNotInteractable
		}
		if parent.Depth >= consts.MaxCommentDepth {
			return nil, ErrCommentDepthLimit
		}
		depth = parent.Depth + 1
		parentOID = &oid
	}

	// 垃圾词匹配在清洗前按原文判定
	status := consts.CommentStatusApproved
	if containsSpam(content) {
		status = consts.CommentStatusSpam
	}

	now := time.Now()
	comment := &mongo.CommentModel{
		PostID:       postOID,
		ParentID:     parentOID,
		Content:      sanitize.UGC(content),
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorEmail:  actor.Email,
		AuthorAvatar: actor.Avatar,
		Status:       status,
		Depth:        depth,
		Likes:        []mongo.CommentLike{},
		EditHistory:  []mongo.CommentEdit{},
		IsAuthor:     actor.ID != "" && actor.ID == post.AuthorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.commentRepo.Create(ctx, comment); err != nil {
		log.ErrorContext(ctx, "create comment error", "post_id", createDTO.PostID, "err", err)
		return nil, UnExpectedError
	}

	if err = s.postRepo.IncField(ctx, postOID, "comments", 1); err != nil {
		log.ErrorContext(ctx, "increment post comments error", "post_id", createDTO.PostID, "err", err)
	}
	s.markCommentCountDirty(ctx, createDTO.PostID)

	if status == consts.CommentStatusApproved {
		receiverID := post.AuthorID
		isReply := parent != nil
		if isReply {
			receiverID = parent.AuthorID
		}
		s.publishCommentEvent(ctx, &kafka.CommentEvent{
			Type:       kafka.EventCommentCreated,
			CommentID:  comment.ID.Hex(),
			PostID:     createDTO.PostID,
			PostSlug:   post.Slug,
			SenderID:   actor.ID,
			SenderName: actor.Name,
			ReceiverID: receiverID,
			Preview:    preview(comment.Content),
			IsReply:    isReply,
			CreatedAt:  now,
		})
	}

	return toCommentDTO(comment, actor), nil
}

// ListComments 帖子下的评论列表，只出 approved 和 pending
func (s *commentServiceImpl) ListComments(ctx context.Context, actor *Actor, query *dto.CommentListQueryDTO) (*dto.CommentPageDTO, error) {
	postOID, err := primitive.ObjectIDFromHex(query.PostID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetByID(ctx, postOID)
	if err != nil {
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !CanViewPost(actor, post) {
		return nil, ErrPostNotFound
	}

	sort := query.Sort
	switch sort {
	case mongo.CommentSortNewest, mongo.CommentSortOldest, mongo.CommentSortPopular:
	case "":
		sort = mongo.CommentSortNewest
	default:
		return nil, ErrParamInvalid
	}

	page := normalizePage(query.Page)
	limit := normalizeLimit(query.Limit, 20, 100)

	statuses := []string{consts.CommentStatusApproved, consts.CommentStatusPending, consts.CommentStatusDeleted}
	list, total, err := s.commentRepo.ListByPost(ctx, postOID, statuses, sort, int64(limit), int64((page-1)*limit))
	if err != nil {
		log.ErrorContext(ctx, "list comments error", "post_id", query.PostID, "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.CommentDTO, 0, len(list))
	for _, comment := range list {
		if !CanViewComment(actor, comment, post) {
			continue
		}
		items = append(items, toCommentDTO(comment, actor))
	}

	return &dto.CommentPageDTO{List: items, Total: total, Page: page, Limit: limit}, nil
}

// EditComment 编辑评论，旧内容进编辑历史
func (s *commentServiceImpl) EditComment(ctx context.Context, actor *Actor, commentID string, content string) (*dto.CommentDTO, error) {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > consts.MaxCommentLength {
		return nil, ErrCommentContentInvalid
	}

	comment, err := s.commentRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, UnExpectedError
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if !CanEditComment(actor, comment) {
		return nil, ErrNoPermission
	}
	if comment.Status != consts.CommentStatusApproved {
		return nil, ErrCommentNotInteractable
	}

	newContent := sanitize.UGC(content)
	edit := mongo.CommentEdit{Content: comment.Content, EditedAt: time.Now()}
	if err = s.commentRepo.UpdateContent(ctx, oid, newContent, edit); err != nil {
		log.ErrorContext(ctx, "edit comment error", "comment_id", commentID, "err", err)
		return nil, UnExpectedError
	}

	comment.Content = newContent
	comment.Edited = true
	comment.EditHistory = append(comment.EditHistory, edit)
	comment.UpdatedAt = time.Now()

	return toCommentDTO(comment, actor), nil
}

// LikeComment 点赞/取消点赞，重复操作幂等
func (s *commentServiceImpl) LikeComment(ctx context.Context, actor *Actor, commentID string, like bool) (*dto.CommentLikeResultDTO, error) {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	comment, err := s.commentRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, UnExpectedError
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.Status != consts.CommentStatusApproved {
		return nil, ErrCommentNotInteractable
	}

	likeCount := len(comment.Likes)
	result := &dto.CommentLikeResultDTO{}

	if like {
		added, err := s.commentRepo.AddLike(ctx, oid, mongo.CommentLike{UserID: actor.ID, CreatedAt: time.Now()})
		if err != nil {
			log.ErrorContext(ctx, "like comment error", "comment_id", commentID, "err", err)
			return nil, UnExpectedError
		}
		result.HasLiked = true
		result.AlreadyLiked = !added
		if added {
			likeCount++
			s.publishCommentEvent(ctx, &kafka.CommentEvent{
				Type:       kafka.EventCommentLiked,
				CommentID:  commentID,
				PostID:     comment.PostID.Hex(),
				SenderID:   actor.ID,
				SenderName: actor.Name,
				ReceiverID: comment.AuthorID,
				Preview:    preview(comment.Content),
				CreatedAt:  time.Now(),
			})
		}
	} else {
		removed, err := s.commentRepo.RemoveLike(ctx, oid, actor.ID)
		if err != nil {
			log.ErrorContext(ctx, "unlike comment error", "comment_id", commentID, "err", err)
			return nil, UnExpectedError
		}
		result.HasLiked = false
		result.AlreadyLiked = !removed
		if removed {
			likeCount--
		}
	}

	result.LikeCount = likeCount
	return result, nil
}

// DeleteComment 删除评论
// 作者本人删除保留回复树，只把内容换成占位文案；帖子作者或管理员删除则连同整棵回复树物理移除
func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor *Actor, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrParamInvalid
	}

	comment, err := s.commentRepo.GetByID(ctx, oid)
	if err != nil {
		return UnExpectedError
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return UnExpectedError
	}
	if !CanDeleteComment(actor, comment, post) {
		return ErrNoPermission
	}

	isSelfDelete := actor.ID != "" && actor.ID == comment.AuthorID && !actor.Admin &&
		(post == nil || actor.ID != post.AuthorID)

	if isSelfDelete {
		if err = s.commentRepo.SoftDelete(ctx, oid, consts.DeletedCommentPlaceholder); err != nil {
			log.ErrorContext(ctx, "soft delete comment error", "comment_id", commentID, "err", err)
			return UnExpectedError
		}
		return nil
	}

	ids, err := s.commentRepo.CollectSubtreeIDs(ctx, oid)
	if err != nil {
		log.ErrorContext(ctx, "collect comment subtree error", "comment_id", commentID, "err", err)
		return UnExpectedError
	}
	removed, err := s.commentRepo.DeleteMany(ctx, ids)
	if err != nil {
		log.ErrorContext(ctx, "delete comment subtree error", "comment_id", commentID, "err", err)
		return UnExpectedError
	}

	if removed > 0 {
		if err = s.postRepo.IncField(ctx, comment.PostID, "comments", -removed); err != nil {
			log.ErrorContext(ctx, "decrement post comments error", "post_id", comment.PostID.Hex(), "err", err)
		}
		s.markCommentCountDirty(ctx, comment.PostID.Hex())
	}

	return nil
}

// SetCommentStatus 审核状态变更，仅管理员
func (s *commentServiceImpl) SetCommentStatus(ctx context.Context, actor *Actor, commentID string, status string) error {
	if actor == nil || !actor.Admin {
		return ErrNoPermission
	}

	switch status {
	case consts.CommentStatusApproved, consts.CommentStatusPending, consts.CommentStatusSpam:
	default:
		return ErrParamInvalid
	}

	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrParamInvalid
	}

	comment, err := s.commentRepo.GetByID(ctx, oid)
	if err != nil {
		return UnExpectedError
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.Status == consts.CommentStatusDeleted {
		return ErrCommentNotInteractable
	}

	if err = s.commentRepo.SetStatus(ctx, oid, status); err != nil {
		log.ErrorContext(ctx, "set comment status error", "comment_id", commentID, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *commentServiceImpl) publishCommentEvent(ctx context.Context, event *kafka.CommentEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishCommentEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish comment event error", "type", event.Type, "comment_id", event.CommentID, "err", err)
	}
}

// markCommentCountDirty 帖子进入计数校准集合，失败只记日志
func (s *commentServiceImpl) markCommentCountDirty(ctx context.Context, postID string) {
	if err := redis.SAdd(ctx, consts.PostCommentCountDirtyKey, postID); err != nil {
		log.WarnContext(ctx, "mark comment count dirty error", "post_id", postID, "err", err)
	}
}

func containsSpam(content string) bool {
	lowered := strings.ToLower(content)
	for _, word := range consts.SpamWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func preview(content string) string {
	text := util.StripHTML(content)
	runes := []rune(text)
	if len(runes) > CommentPreviewLength {
		return string(runes[:CommentPreviewLength]) + "..."
	}
	return text
}

func toCommentDTO(comment *mongo.CommentModel, actor *Actor) *dto.CommentDTO {
	d := &dto.CommentDTO{
		ID:           comment.ID.Hex(),
		PostID:       comment.PostID.Hex(),
		Content:      comment.Content,
		AuthorID:     comment.AuthorID,
		AuthorName:   comment.AuthorName,
		AuthorAvatar: comment.AuthorAvatar,
		Status:       comment.Status,
		Depth:        comment.Depth,
		LikeCount:    len(comment.Likes),
		Edited:       comment.Edited,
		IsAuthor:     comment.IsAuthor,
		CreatedAt:    comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    comment.UpdatedAt.Format(time.RFC3339),
	}
	if comment.ParentID != nil {
		d.ParentID = util.PtrStr(comment.ParentID.Hex())
	}
	if actor != nil {
		d.HasLiked = comment.HasLiked(actor.ID)
	}
	return d
}
