package service

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"testing"

	"github.com/stretchr/testify/assert"
)

func publishedPost() *mongo.PostModel {
	return &mongo.PostModel{
		Status:      consts.PostStatusPublished,
		AuthorID:    "1",
		AuthorEmail: "author@example.com",
	}
}

func draftPost() *mongo.PostModel {
	post := publishedPost()
	post.Status = consts.PostStatusDraft
	return post
}

func TestCanViewPost(t *testing.T) {
	author := &Actor{ID: "1", Email: "author@example.com"}
	stranger := &Actor{ID: "2", Email: "other@example.com"}
	admin := &Actor{ID: "3", Admin: true}

	assert.True(t, CanViewPost(nil, publishedPost()))
	assert.True(t, CanViewPost(stranger, publishedPost()))

	assert.False(t, CanViewPost(nil, draftPost()))
	assert.False(t, CanViewPost(stranger, draftPost()))
	assert.True(t, CanViewPost(author, draftPost()))
	assert.True(t, CanViewPost(admin, draftPost()))

	private := publishedPost()
	private.Status = consts.PostStatusPrivate
	assert.False(t, CanViewPost(stranger, private))
	assert.True(t, CanViewPost(author, private))
}

func TestCanViewPost_EmailFallback(t *testing.T) {
	// 历史数据可能只有作者邮箱没有 ID
	post := draftPost()
	post.AuthorID = ""

	byEmail := &Actor{ID: "9", Email: "author@example.com"}
	assert.True(t, CanViewPost(byEmail, post))
}

func TestCanEditPost(t *testing.T) {
	author := &Actor{ID: "1", Email: "author@example.com"}
	admin := &Actor{ID: "3", Admin: true}

	assert.True(t, CanEditPost(author, publishedPost()))
	// 管理员也不能编辑别人的帖子
	assert.False(t, CanEditPost(admin, publishedPost()))
	assert.False(t, CanEditPost(nil, publishedPost()))
}

func TestCanDeletePost(t *testing.T) {
	author := &Actor{ID: "1", Email: "author@example.com"}
	stranger := &Actor{ID: "2"}
	admin := &Actor{ID: "3", Admin: true}

	assert.True(t, CanDeletePost(author, publishedPost()))
	assert.True(t, CanDeletePost(admin, publishedPost()))
	assert.False(t, CanDeletePost(stranger, publishedPost()))
	assert.False(t, CanDeletePost(nil, publishedPost()))
}

func TestCanViewComment(t *testing.T) {
	comment := &mongo.CommentModel{AuthorID: "5"}

	assert.True(t, CanViewComment(nil, comment, publishedPost()))
	assert.False(t, CanViewComment(nil, comment, draftPost()))
	assert.False(t, CanViewComment(&Actor{ID: "6"}, comment, draftPost()))
	// 评论作者总能看到自己的评论
	assert.True(t, CanViewComment(&Actor{ID: "5"}, comment, draftPost()))
}

func TestCanEditComment(t *testing.T) {
	comment := &mongo.CommentModel{AuthorID: "5"}

	assert.True(t, CanEditComment(&Actor{ID: "5"}, comment))
	assert.False(t, CanEditComment(&Actor{ID: "6"}, comment))
	assert.False(t, CanEditComment(&Actor{ID: "6", Admin: true}, comment))
	assert.False(t, CanEditComment(nil, comment))
}

func TestCanDeleteComment(t *testing.T) {
	comment := &mongo.CommentModel{AuthorID: "5"}
	post := publishedPost()

	assert.True(t, CanDeleteComment(&Actor{ID: "5"}, comment, post))
	assert.True(t, CanDeleteComment(&Actor{ID: "1"}, comment, post), "post author may moderate")
	assert.True(t, CanDeleteComment(&Actor{ID: "9", Admin: true}, comment, post))
	assert.False(t, CanDeleteComment(&Actor{ID: "9"}, comment, post))
	assert.False(t, CanDeleteComment(nil, comment, post))
}
