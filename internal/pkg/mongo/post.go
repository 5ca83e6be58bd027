package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentBlock 编辑器输出的内容块，核心逻辑只透传不解释（摘要生成只看 paragraph 的 text）
type ContentBlock struct {
	ID   string         `bson:"id,omitempty" json:"id,omitempty"`
	Type string         `bson:"type" json:"type"`
	Data map[string]any `bson:"data" json:"data"`
}

// PostModel 帖子文档
type PostModel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug            string             `bson:"slug" json:"slug"` // 全局唯一，小写 URL 安全
	Title           string             `bson:"title" json:"title"`
	Excerpt         string             `bson:"excerpt" json:"excerpt"`
	Content         []ContentBlock     `bson:"content" json:"content"`
	FeaturedImage   string             `bson:"featured_image" json:"featuredImage"`
	Tags            []string           `bson:"tags" json:"tags"`
	Category        string             `bson:"category" json:"category"`
	Status          string             `bson:"status" json:"status"` // draft / published / private
	MetaTitle       string             `bson:"meta_title" json:"metaTitle"`
	MetaDescription string             `bson:"meta_description" json:"metaDescription"`
	AuthorID        string             `bson:"author_id" json:"authorId"`
	AuthorName      string             `bson:"author_name" json:"authorName"`
	AuthorEmail     string             `bson:"author_email" json:"authorEmail"`
	Views           int64              `bson:"views" json:"views"`
	Likes           int64              `bson:"likes" json:"likes"`
	Comments        int64              `bson:"comments" json:"comments"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
