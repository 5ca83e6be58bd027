package dto

// CommentCreateDTO 评论 - 新增
type CommentCreateDTO struct {
	PostID   string  `json:"post_id" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CommentEditDTO 评论 - 修改正文
type CommentEditDTO struct {
	Content string `json:"content" binding:"required"`
}

// CommentDTO 评论返回对象
type CommentDTO struct {
	ID           string  `json:"id"`
	PostID       string  `json:"post_id"`
	ParentID     *string `json:"parent_id,omitempty"`
	Content      string  `json:"content"`
	AuthorID     string  `json:"author_id"`
	AuthorName   string  `json:"author_name"`
	AuthorAvatar string  `json:"author_avatar,omitempty"`
	Status       string  `json:"status"`
	Depth        int     `json:"depth"`
	LikeCount    int     `json:"like_count"`
	HasLiked     bool    `json:"has_liked"`
	Edited       bool    `json:"edited"`
	IsAuthor     bool    `json:"is_author"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// CommentPageDTO 分页返回
type CommentPageDTO struct {
	List  []*CommentDTO `json:"list"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// CommentListQueryDTO 列表查询参数
type CommentListQueryDTO struct {
	PostID string `form:"post_id" binding:"required"`
	Sort   string `form:"sort,default=newest" validate:"omitempty,oneof=newest oldest popular"`
	Page   int    `form:"page,default=1" validate:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" validate:"omitempty,min=1,max=100"`
}

// CommentLikeResultDTO 点赞切换结果
type CommentLikeResultDTO struct {
	LikeCount    int  `json:"like_count"`
	HasLiked     bool `json:"has_liked"`
	AlreadyLiked bool `json:"already_liked"`
}

// CommentStatusDTO 审核状态变更
type CommentStatusDTO struct {
	Status string `json:"status" binding:"required" validate:"oneof=approved pending spam"`
}
