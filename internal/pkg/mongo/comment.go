package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentLike 点赞集合里的一项，user_id 在同一条评论内唯一
type CommentLike struct {
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CommentEdit 一次编辑留下的历史快照
type CommentEdit struct {
	Content  string    `bson:"content" json:"content"`
	EditedAt time.Time `bson:"edited_at" json:"editedAt"`
}

// CommentModel 评论文档
type CommentModel struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID       primitive.ObjectID  `bson:"post_id" json:"postId"`
	ParentID     *primitive.ObjectID `bson:"parent_id,omitempty" json:"parentId,omitempty"` // nil 表示一级评论
	Content      string              `bson:"content" json:"content"`
	AuthorID     string              `bson:"author_id" json:"authorId"`
	AuthorName   string              `bson:"author_name" json:"authorName"`
	AuthorEmail  string              `bson:"author_email" json:"authorEmail"`
	AuthorAvatar string              `bson:"author_avatar" json:"authorAvatar"`
	Status       string              `bson:"status" json:"status"` // approved / pending / spam / deleted
	Depth        int                 `bson:"depth" json:"depth"`   // 0-5，回复层级 = 父级 + 1
	Likes        []CommentLike       `bson:"likes" json:"likes"`
	Edited       bool                `bson:"edited" json:"edited"`
	EditHistory  []CommentEdit       `bson:"edit_history" json:"editHistory"`
	IsAuthor     bool                `bson:"is_author" json:"isAuthor"` // 创建时快照，帖子转移后不重算
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}

// HasLiked 判断某用户是否已点赞
func (c *CommentModel) HasLiked(userID string) bool {
	for _, like := range c.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}
