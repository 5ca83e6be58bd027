package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/sanitize"
	"Inkstone/internal/pkg/util"
	"context"
	log "log/slog"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxTitleLength = 200

type PostService interface {
	CreatePost(ctx context.Context, actor *Actor, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPostBySlug(ctx context.Context, actor *Actor, slug string) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, actor *Actor, query *dto.PostListQueryDTO) (*dto.PostPageDTO, error)
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.PostPageDTO, error)
	UpdatePost(ctx context.Context, actor *Actor, postID string, patch *dto.PostPatchDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, actor *Actor, postID string) error
	LikePost(ctx context.Context, actor *Actor, postID string, like bool) error
	CheckSlug(ctx context.Context, slug string) (*dto.SlugCheckDTO, error)
	Categories() []string
}

type postServiceImpl struct {
	postRepo    mongo.PostRepo
	commentRepo mongo.CommentRepo
	postESRepo  es.PostRepo
	producer    kafka.Producer
}

func NewPostService(postRepo mongo.PostRepo, commentRepo mongo.CommentRepo, postESRepo es.PostRepo, producer kafka.Producer) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		postESRepo:  postESRepo,
		producer:    producer,
	}
}

// CreatePost 创建帖子
// slug 缺省时从标题派生，显式提供时冲突直接报错
func (s *postServiceImpl) CreatePost(ctx context.Context, actor *Actor, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error) {
	title := strings.TrimSpace(postDTO.Title)
	if title == "" || len([]rune(title)) > MaxTitleLength {
		return nil, ErrTitleInvalid
	}
	if len(postDTO.Content) == 0 {
		return nil, ErrContentRequired
	}

	status := consts.PostStatusDraft
	if postDTO.Status != nil {
		if !isValidPostStatus(*postDTO.Status) {
			return nil, ErrStatusInvalid
		}
		status = *postDTO.Status
	}

	category := consts.DefaultPostCategory
	if postDTO.Category != nil && *postDTO.Category != "" {
		if !slices.Contains(consts.PostCategories, *postDTO.Category) {
			return nil, ErrCategoryInvalid
		}
		category = *postDTO.Category
	}

	slug := ""
	if postDTO.Slug != nil && strings.TrimSpace(*postDTO.Slug) != "" {
		normalized, ok := util.NormalizeSlug(*postDTO.Slug)
		if !ok {
			return nil, ErrSlugInvalid
		}
		slug = normalized
	} else {
		slug = util.DeriveSlug(title)
	}
	if slug == "" {
		return nil, ErrParamInvalid
	}

	taken, err := s.postRepo.SlugTaken(ctx, slug, primitive.NilObjectID)
	if err != nil {
		return nil, UnExpectedError
	}
	if taken {
		return nil, ErrSlugExist
	}

	blocks := toContentBlocks(postDTO.Content)

	excerpt := ""
	if postDTO.Excerpt != nil && strings.TrimSpace(*postDTO.Excerpt) != "" {
		excerpt = strings.TrimSpace(*postDTO.Excerpt)
	} else {
		excerpt = deriveExcerptFromBlocks(blocks)
	}

	now := time.Now()
	post := &mongo.PostModel{
		Slug:        slug,
		Title:       title,
		Excerpt:     excerpt,
		Content:     blocks,
		Tags:        postDTO.Tags,
		Category:    category,
		Status:      status,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		AuthorEmail: actor.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if postDTO.FeaturedImage != nil {
		post.FeaturedImage = *postDTO.FeaturedImage
	}
	if postDTO.MetaTitle != nil {
		post.MetaTitle = *postDTO.MetaTitle
	}
	if postDTO.MetaDescription != nil {
		post.MetaDescription = *postDTO.MetaDescription
	}

	if err = s.postRepo.Create(ctx, post); err != nil {
		// 并发创建同名 slug 时由唯一索引兜底
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugExist
		}
		log.ErrorContext(ctx, "create post error", "err", err)
		return nil, UnExpectedError
	}

	s.publishPostEvent(ctx, kafka.EventPostCreated, post)

	return toPostDTO(post), nil
}

// GetPostBySlug 读取帖子详情，已发布帖子每次读取浏览数加一
func (s *postServiceImpl) GetPostBySlug(ctx context.Context, actor *Actor, slug string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !CanViewPost(actor, post) {
		// 不暴露帖子存在性
		return nil, ErrPostNotFound
	}

	if post.Status == consts.PostStatusPublished {
		if err = s.postRepo.IncField(ctx, post.ID, "views", 1); err != nil {
			log.WarnContext(ctx, "increment views error", "post_id", post.ID.Hex(), "err", err)
		} else {
			post.Views++
		}
	}

	return toPostDTO(post), nil
}

// ListPosts 帖子列表
// 非作者本人且非管理员的查询强制只返回已发布内容
func (s *postServiceImpl) ListPosts(ctx context.Context, actor *Actor, query *dto.PostListQueryDTO) (*dto.PostPageDTO, error) {
	filter := mongo.PostFilter{
		Status:   query.Status,
		AuthorID: query.Author,
		Category: query.Category,
		Tag:      query.Tag,
	}

	ownQuery := actor != nil && (actor.Admin || (query.Author != "" && query.Author == actor.ID))
	if !ownQuery {
		filter.Status = consts.PostStatusPublished
	}

	page := normalizePage(query.Page)
	limit := normalizeLimit(query.Limit, 10, 50)

	list, total, err := s.postRepo.List(ctx, filter, int64(limit), int64((page-1)*limit))
	if err != nil {
		log.ErrorContext(ctx, "list posts error", "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.PostListItemDTO, 0, len(list))
	for _, post := range list {
		items = append(items, toPostListItemDTO(post))
	}

	return &dto.PostPageDTO{List: items, Total: total, Page: page, Limit: limit}, nil
}

// SearchPosts 全文检索已发布帖子，空关键词回退为最新列表
func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.PostPageDTO, error) {
	keyword = strings.TrimSpace(keyword)

	page = normalizePage(page)
	pageSize = normalizeLimit(pageSize, 10, 50)

	var docs []*es.PostES
	var err error
	if keyword == "" {
		docs, err = s.postESRepo.GetLatestPosts(ctx, (page-1)*pageSize, pageSize)
	} else {
		docs, err = s.postESRepo.SearchPosts(ctx, keyword, (page-1)*pageSize, pageSize)
	}
	if err != nil {
		log.ErrorContext(ctx, "search posts error", "keyword", keyword, "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.PostListItemDTO, 0, len(docs))
	for _, doc := range docs {
		items = append(items, &dto.PostListItemDTO{
			ID:         doc.ID,
			Slug:       doc.Slug,
			Title:      doc.Title,
			Excerpt:    doc.Excerpt,
			Tags:       doc.Tags,
			Category:   doc.Category,
			Status:     doc.Status,
			AuthorID:   doc.AuthorID,
			AuthorName: doc.AuthorName,
			CreatedAt:  doc.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.PostPageDTO{List: items, Total: int64(len(items)), Page: page, Limit: pageSize}, nil
}

// UpdatePost 按字段白名单部分更新
// 标题变化时重新派生 slug，新 slug 被占用则静默保留旧值；显式传入的 slug 冲突直接报错
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor *Actor, postID string, patch *dto.PostPatchDTO) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !CanEditPost(actor, post) {
		return nil, ErrNoPermission
	}

	fields := map[string]any{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" || len([]rune(title)) > MaxTitleLength {
			return nil, ErrTitleInvalid
		}
		if title != post.Title {
			fields["title"] = title
			post.Title = title

			if patch.Slug == nil {
				newSlug := util.DeriveSlug(title)
				if newSlug != "" && newSlug != post.Slug {
					taken, err := s.postRepo.SlugTaken(ctx, newSlug, oid)
					if err != nil {
						return nil, UnExpectedError
					}
					if !taken {
						fields["slug"] = newSlug
						post.Slug = newSlug
					}
				}
			}
		}
	}

	if patch.Slug != nil {
		slug, ok := util.NormalizeSlug(*patch.Slug)
		if !ok {
			return nil, ErrSlugInvalid
		}
		if slug != post.Slug {
			taken, err := s.postRepo.SlugTaken(ctx, slug, oid)
			if err != nil {
				return nil, UnExpectedError
			}
			if taken {
				return nil, ErrSlugExist
			}
			fields["slug"] = slug
			post.Slug = slug
		}
	}

	if patch.Content != nil {
		if len(*patch.Content) == 0 {
			return nil, ErrContentRequired
		}
		blocks := toContentBlocks(*patch.Content)
		fields["content"] = blocks
		post.Content = blocks

		if patch.Excerpt == nil && post.Excerpt == "" {
			excerpt := deriveExcerptFromBlocks(blocks)
			fields["excerpt"] = excerpt
			post.Excerpt = excerpt
		}
	}

	if patch.Excerpt != nil {
		excerpt := strings.TrimSpace(*patch.Excerpt)
		fields["excerpt"] = excerpt
		post.Excerpt = excerpt
	}

	if patch.FeaturedImage != nil {
		fields["featured_image"] = *patch.FeaturedImage
		post.FeaturedImage = *patch.FeaturedImage
	}

	if patch.Tags != nil {
		fields["tags"] = *patch.Tags
		post.Tags = *patch.Tags
	}

	if patch.Category != nil {
		if !slices.Contains(consts.PostCategories, *patch.Category) {
			return nil, ErrCategoryInvalid
		}
		fields["category"] = *patch.Category
		post.Category = *patch.Category
	}

	if patch.Status != nil {
		if !isValidPostStatus(*patch.Status) {
			return nil, ErrStatusInvalid
		}
		fields["status"] = *patch.Status
		post.Status = *patch.Status
	}

	if patch.MetaTitle != nil {
		fields["meta_title"] = *patch.MetaTitle
		post.MetaTitle = *patch.MetaTitle
	}

	if patch.MetaDescription != nil {
		fields["meta_description"] = *patch.MetaDescription
		post.MetaDescription = *patch.MetaDescription
	}

	if len(fields) == 0 {
		return toPostDTO(post), nil
	}

	if err = s.postRepo.UpdateFields(ctx, oid, fields); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugExist
		}
		log.ErrorContext(ctx, "update post error", "post_id", postID, "err", err)
		return nil, UnExpectedError
	}
	post.UpdatedAt = time.Now()

	s.publishPostEvent(ctx, kafka.EventPostUpdated, post)

	return toPostDTO(post), nil
}

// DeletePost 删除帖子，评论保留不级联
func (s *postServiceImpl) DeletePost(ctx context.Context, actor *Actor, postID string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, oid)
	if err != nil {
		return UnExpectedError
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !CanDeletePost(actor, post) {
		return ErrNoPermission
	}

	if err = s.postRepo.Delete(ctx, oid); err != nil {
		log.ErrorContext(ctx, "delete post error", "post_id", postID, "err", err)
		return UnExpectedError
	}

	s.publishPostEvent(ctx, kafka.EventPostDeleted, post)
	return nil
}

// LikePost 点赞/取消点赞已发布帖子
func (s *postServiceImpl) LikePost(ctx context.Context, actor *Actor, postID string, like bool) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, oid)
	if err != nil {
		return UnExpectedError
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.Status != consts.PostStatusPublished {
		return ErrPostNotPublished
	}

	if like {
		err = s.postRepo.IncField(ctx, oid, "likes", 1)
	} else {
		err = s.postRepo.DecFieldFloor(ctx, oid, "likes")
	}
	if err != nil {
		log.ErrorContext(ctx, "update post likes error", "post_id", postID, "err", err)
		return UnExpectedError
	}
	return nil
}

// CheckSlug 检查 slug 是否可用
func (s *postServiceImpl) CheckSlug(ctx context.Context, slug string) (*dto.SlugCheckDTO, error) {
	normalized, ok := util.NormalizeSlug(slug)
	if !ok {
		return nil, ErrSlugInvalid
	}
	taken, err := s.postRepo.SlugTaken(ctx, normalized, primitive.NilObjectID)
	if err != nil {
		return nil, UnExpectedError
	}
	return &dto.SlugCheckDTO{Slug: normalized, Available: !taken}, nil
}

func (s *postServiceImpl) Categories() []string {
	return consts.PostCategories
}

func (s *postServiceImpl) publishPostEvent(ctx context.Context, eventType string, post *mongo.PostModel) {
	if s.producer == nil {
		return
	}
	event := &kafka.PostEvent{
		Type:         eventType,
		PostID:       post.ID.Hex(),
		Slug:         post.Slug,
		Title:        post.Title,
		Excerpt:      post.Excerpt,
		PlainContent: plainContent(post.Content),
		Tags:         post.Tags,
		Category:     post.Category,
		Status:       post.Status,
		AuthorID:     post.AuthorID,
		AuthorName:   post.AuthorName,
		CreatedAt:    post.CreatedAt,
	}
	if err := s.producer.PublishPostEvent(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish post event error", "type", eventType, "post_id", event.PostID, "err", err)
	}
}

func isValidPostStatus(status string) bool {
	switch status {
	case consts.PostStatusDraft, consts.PostStatusPublished, consts.PostStatusPrivate:
		return true
	}
	return false
}

func toContentBlocks(blockDTOs []dto.ContentBlockDTO) []mongo.ContentBlock {
	blocks := make([]mongo.ContentBlock, 0, len(blockDTOs))
	for _, b := range blockDTOs {
		sanitize.Blocks([]map[string]any{b.Data})
		blocks = append(blocks, mongo.ContentBlock{
			ID:   b.ID,
			Type: b.Type,
			Data: b.Data,
		})
	}
	return blocks
}

// deriveExcerptFromBlocks 从段落块提取摘要文本
func deriveExcerptFromBlocks(blocks []mongo.ContentBlock) string {
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Type != "paragraph" {
			continue
		}
		if text, ok := block.Data["text"].(string); ok {
			paragraphs = append(paragraphs, text)
		}
	}
	return util.DeriveExcerpt(paragraphs)
}

// plainContent 拼出全文纯文本，供全文检索用
func plainContent(blocks []mongo.ContentBlock) string {
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if text, ok := block.Data["text"].(string); ok {
			texts = append(texts, util.StripHTML(text))
		}
	}
	return strings.Join(texts, " ")
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit, def, max int) int {
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func toPostDTO(post *mongo.PostModel) *dto.PostDTO {
	blocks := make([]dto.ContentBlockDTO, 0, len(post.Content))
	for _, b := range post.Content {
		blocks = append(blocks, dto.ContentBlockDTO{ID: b.ID, Type: b.Type, Data: b.Data})
	}
	return &dto.PostDTO{
		ID:              post.ID.Hex(),
		Slug:            post.Slug,
		Title:           post.Title,
		Excerpt:         post.Excerpt,
		Content:         blocks,
		FeaturedImage:   post.FeaturedImage,
		Tags:            post.Tags,
		Category:        post.Category,
		Status:          post.Status,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		AuthorID:        post.AuthorID,
		AuthorName:      post.AuthorName,
		Views:           post.Views,
		Likes:           post.Likes,
		Comments:        post.Comments,
		CreatedAt:       post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       post.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostListItemDTO(post *mongo.PostModel) *dto.PostListItemDTO {
	return &dto.PostListItemDTO{
		ID:            post.ID.Hex(),
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		FeaturedImage: post.FeaturedImage,
		Tags:          post.Tags,
		Category:      post.Category,
		Status:        post.Status,
		AuthorID:      post.AuthorID,
		AuthorName:    post.AuthorName,
		Views:         post.Views,
		Likes:         post.Likes,
		Comments:      post.Comments,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
	}
}
