package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driver "go.mongodb.org/mongo-driver/mongo"
)

func newPostServiceForTest() (PostService, *fakePostRepo, *fakeProducer) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	producer := newFakeProducer()
	svc := NewPostService(postRepo, commentRepo, newFakePostESRepo(), producer)
	return svc, postRepo, producer
}

func testAuthor() *Actor {
	return &Actor{ID: "1", Email: "author@example.com", Name: "Author"}
}

func paragraph(text string) dto.ContentBlockDTO {
	return dto.ContentBlockDTO{Type: "paragraph", Data: map[string]any{"text": text}}
}

func createPost(t *testing.T, svc PostService, createDTO *dto.PostCreateDTO) *dto.PostDTO {
	post, err := svc.CreatePost(context.Background(), testAuthor(), createDTO)
	require.NoError(t, err)
	return post
}

func TestCreatePost_Defaults(t *testing.T) {
	svc, _, _ := newPostServiceForTest()

	post := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Hello, World!  Welcome",
		Content: []dto.ContentBlockDTO{paragraph("First paragraph.")},
	})

	assert.Equal(t, "hello-world-welcome", post.Slug)
	assert.Equal(t, consts.PostStatusDraft, post.Status)
	assert.Equal(t, consts.DefaultPostCategory, post.Category)
	assert.Equal(t, "First paragraph.", post.Excerpt)
	assert.Equal(t, int64(0), post.Views)
	assert.Equal(t, int64(0), post.Likes)
	assert.Equal(t, int64(0), post.Comments)
	assert.Equal(t, "1", post.AuthorID)
}

func TestCreatePost_Validation(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "   ",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	assert.ErrorIs(t, err, ErrTitleInvalid)

	_, err = svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{Title: "ok"})
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "ok",
		Content: []dto.ContentBlockDTO{paragraph("x")},
		Status:  util.PtrStr("archived"),
	})
	assert.ErrorIs(t, err, ErrStatusInvalid)

	_, err = svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:    "ok",
		Content:  []dto.ContentBlockDTO{paragraph("x")},
		Category: util.PtrStr("sports"),
	})
	assert.ErrorIs(t, err, ErrCategoryInvalid)
}

func TestCreatePost_SlugConflict(t *testing.T) {
	svc, repo, _ := newPostServiceForTest()
	ctx := context.Background()

	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Same Title",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	_, err := svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "Same Title",
		Content: []dto.ContentBlockDTO{paragraph("y")},
	})
	assert.ErrorIs(t, err, ErrSlugExist)

	// 冲突时不应写入第二条记录
	assert.Len(t, repo.posts, 1)
}

func TestCreatePost_ExplicitSlug(t *testing.T) {
	svc, repo, _ := newPostServiceForTest()
	ctx := context.Background()

	// 显式 slug 的连字符原样保留
	post := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "First",
		Slug:    util.PtrStr("My-Post"),
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	assert.Equal(t, "my-post", post.Slug)

	_, err := svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "Second",
		Slug:    util.PtrStr("my-post"),
		Content: []dto.ContentBlockDTO{paragraph("y")},
	})
	assert.ErrorIs(t, err, ErrSlugExist)
	assert.Len(t, repo.posts, 1)

	_, err = svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "Third",
		Slug:    util.PtrStr("-bad slug-"),
		Content: []dto.ContentBlockDTO{paragraph("z")},
	})
	assert.ErrorIs(t, err, ErrSlugInvalid)
}

func TestCreatePost_DuplicateKeyRace(t *testing.T) {
	svc, repo, _ := newPostServiceForTest()
	ctx := context.Background()

	// 预检通过但插入撞唯一索引，对应并发创建同名 slug
	repo.createErr = driver.WriteException{WriteErrors: driver.WriteErrors{{Code: 11000}}}

	_, err := svc.CreatePost(ctx, testAuthor(), &dto.PostCreateDTO{
		Title:   "Raced",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	assert.ErrorIs(t, err, ErrSlugExist)
	assert.Empty(t, repo.posts)
}

func TestCreatePost_LongExcerptTruncated(t *testing.T) {
	svc, _, _ := newPostServiceForTest()

	long := ""
	for i := 0; i < 40; i++ {
		long += "lorem "
	}
	post := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Long One",
		Content: []dto.ContentBlockDTO{paragraph(long)},
	})

	assert.LessOrEqual(t, len([]rune(post.Excerpt)), util.ExcerptLength+3)
	assert.Contains(t, post.Excerpt, "...")
}

func TestGetPostBySlug_ViewCounting(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Counted",
		Content: []dto.ContentBlockDTO{paragraph("x")},
		Status:  util.PtrStr(consts.PostStatusPublished),
	})

	first, err := svc.GetPostBySlug(ctx, nil, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.GetPostBySlug(ctx, nil, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
}

func TestGetPostBySlug_DraftHiddenFromOthers(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Secret Draft",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	_, err := svc.GetPostBySlug(ctx, nil, created.Slug)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPostBySlug(ctx, &Actor{ID: "2"}, created.Slug)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 草稿不计浏览量
	own, err := svc.GetPostBySlug(ctx, testAuthor(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), own.Views)
}

func TestUpdatePost_TitleChangeRegeneratesSlug(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Original Title",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	updated, err := svc.UpdatePost(ctx, testAuthor(), created.ID, &dto.PostPatchDTO{
		Title: util.PtrStr("Brand New Title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestUpdatePost_SlugKeptWhenRegeneratedConflicts(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Taken Title",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Second Post",
		Content: []dto.ContentBlockDTO{paragraph("y")},
	})

	// 标题改成与已有 slug 冲突的值：静默保留旧 slug，不报错
	updated, err := svc.UpdatePost(ctx, testAuthor(), created.ID, &dto.PostPatchDTO{
		Title: util.PtrStr("Taken Title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Taken Title", updated.Title)
	assert.Equal(t, "second-post", updated.Slug)
}

func TestUpdatePost_ExplicitSlugConflictFails(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Taken Title",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Second Post",
		Content: []dto.ContentBlockDTO{paragraph("y")},
	})

	_, err := svc.UpdatePost(ctx, testAuthor(), created.ID, &dto.PostPatchDTO{
		Slug: util.PtrStr("taken-title"),
	})
	assert.ErrorIs(t, err, ErrSlugExist)
}

func TestUpdatePost_PermissionDenied(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Mine",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	_, err := svc.UpdatePost(ctx, &Actor{ID: "2"}, created.ID, &dto.PostPatchDTO{
		Title: util.PtrStr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrNoPermission)

	// 管理员同样不能编辑
	_, err = svc.UpdatePost(ctx, &Actor{ID: "3", Admin: true}, created.ID, &dto.PostPatchDTO{
		Title: util.PtrStr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrNoPermission)
}

func TestDeletePost_AdminAllowed(t *testing.T) {
	svc, repo, producer := newPostServiceForTest()
	ctx := context.Background()

	created := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "To Delete",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	err := svc.DeletePost(ctx, &Actor{ID: "2"}, created.ID)
	assert.ErrorIs(t, err, ErrNoPermission)

	err = svc.DeletePost(ctx, &Actor{ID: "3", Admin: true}, created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.posts)

	last := producer.postEvents[len(producer.postEvents)-1]
	assert.Equal(t, "post.deleted", last.Type)
}

func TestLikePost_OnlyPublished(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	draft := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Draft Like",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})
	err := svc.LikePost(ctx, &Actor{ID: "2"}, draft.ID, true)
	assert.ErrorIs(t, err, ErrPostNotPublished)

	published := createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Published Like",
		Content: []dto.ContentBlockDTO{paragraph("x")},
		Status:  util.PtrStr(consts.PostStatusPublished),
	})
	require.NoError(t, svc.LikePost(ctx, &Actor{ID: "2"}, published.ID, true))

	// 取消点赞不会把计数减到负数
	require.NoError(t, svc.LikePost(ctx, &Actor{ID: "2"}, published.ID, false))
	require.NoError(t, svc.LikePost(ctx, &Actor{ID: "2"}, published.ID, false))

	got, err := svc.GetPostBySlug(ctx, nil, published.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Likes)
}

func TestCheckSlug(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Existing Post",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	taken, err := svc.CheckSlug(ctx, "Existing-Post")
	require.NoError(t, err)
	assert.Equal(t, "existing-post", taken.Slug)
	assert.False(t, taken.Available)

	free, err := svc.CheckSlug(ctx, "fresh-slug")
	require.NoError(t, err)
	assert.True(t, free.Available)

	_, err = svc.CheckSlug(ctx, "not a slug!")
	assert.ErrorIs(t, err, ErrSlugInvalid)
}

func TestSearchPosts_EmptyKeywordFallsBackToLatest(t *testing.T) {
	esRepo := newFakePostESRepo()
	svc := NewPostService(newFakePostRepo(), newFakeCommentRepo(), esRepo, newFakeProducer())
	ctx := context.Background()

	require.NoError(t, esRepo.IndexPost(ctx, &es.PostES{
		ID:     "doc-1",
		Slug:   "latest-post",
		Title:  "Latest",
		Status: consts.PostStatusPublished,
	}))

	page, err := svc.SearchPosts(ctx, "   ", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "latest-post", page.List[0].Slug)
}

func TestListPosts_ForcesPublishedForStrangers(t *testing.T) {
	svc, _, _ := newPostServiceForTest()
	ctx := context.Background()

	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Visible",
		Content: []dto.ContentBlockDTO{paragraph("x")},
		Status:  util.PtrStr(consts.PostStatusPublished),
	})
	createPost(t, svc, &dto.PostCreateDTO{
		Title:   "Hidden Draft",
		Content: []dto.ContentBlockDTO{paragraph("x")},
	})

	page, err := svc.ListPosts(ctx, nil, &dto.PostListQueryDTO{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Visible", page.List[0].Title)

	// 作者查询自己的列表可以带任意状态
	own, err := svc.ListPosts(ctx, testAuthor(), &dto.PostListQueryDTO{Author: "1", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), own.Total)
}
