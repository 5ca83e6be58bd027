package service

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
)

// Actor 当前请求主体，nil 表示匿名访客
type Actor struct {
	ID     string
	Email  string
	Name   string
	Avatar string
	Admin  bool
}

// ownsPost 按 ID 或邮箱判定帖子归属，兼容历史数据只存邮箱的情况
func ownsPost(actor *Actor, post *mongo.PostModel) bool {
	if actor == nil {
		return false
	}
	if actor.ID != "" && actor.ID == post.AuthorID {
		return true
	}
	return actor.Email != "" && actor.Email == post.AuthorEmail
}

// CanViewPost 已发布对所有人可见，其余状态仅作者与管理员可见
func CanViewPost(actor *Actor, post *mongo.PostModel) bool {
	if post.Status == consts.PostStatusPublished {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.Admin || ownsPost(actor, post)
}

// CanEditPost 仅作者本人可编辑
func CanEditPost(actor *Actor, post *mongo.PostModel) bool {
	return ownsPost(actor, post)
}

// CanDeletePost 作者本人或管理员可删除
func CanDeletePost(actor *Actor, post *mongo.PostModel) bool {
	if actor != nil && actor.Admin {
		return true
	}
	return ownsPost(actor, post)
}

// CanViewComment 规则同帖子可见性，评论作者额外总能看到自己的评论
func CanViewComment(actor *Actor, comment *mongo.CommentModel, post *mongo.PostModel) bool {
	if CanViewPost(actor, post) {
		return true
	}
	return actor != nil && actor.ID != "" && actor.ID == comment.AuthorID
}

// CanEditComment 仅评论作者本人可编辑，管理员也不行
func CanEditComment(actor *Actor, comment *mongo.CommentModel) bool {
	return actor != nil && actor.ID != "" && actor.ID == comment.AuthorID
}

// CanDeleteComment 评论作者、帖子作者或管理员可删除
func CanDeleteComment(actor *Actor, comment *mongo.CommentModel, post *mongo.PostModel) bool {
	if actor == nil {
		return false
	}
	if actor.Admin {
		return true
	}
	if actor.ID != "" && actor.ID == comment.AuthorID {
		return true
	}
	return post != nil && ownsPost(actor, post)
}
