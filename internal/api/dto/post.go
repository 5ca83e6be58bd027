package dto

// ContentBlockDTO 结构化正文块
type ContentBlockDTO struct {
	ID   string         `json:"id,omitempty"`
	Type string         `json:"type" binding:"required"`
	Data map[string]any `json:"data" binding:"required"`
}

// PostCreateDTO 帖子 - 新增
type PostCreateDTO struct {
	Title           string            `json:"title" binding:"required" validate:"min=1,max=200"`
	Slug            *string           `json:"slug,omitempty" validate:"omitempty,max=60"`
	Excerpt         *string           `json:"excerpt,omitempty" validate:"omitempty,max=300"`
	Content         []ContentBlockDTO `json:"content" binding:"required" validate:"min=1"`
	FeaturedImage   *string           `json:"featured_image,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Category        *string           `json:"category,omitempty"`
	Status          *string           `json:"status,omitempty"`
	MetaTitle       *string           `json:"meta_title,omitempty"`
	MetaDescription *string           `json:"meta_description,omitempty"`
}

// PostPatchDTO 帖子 - 部分修改，nil 字段不更新
type PostPatchDTO struct {
	Title           *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug            *string            `json:"slug,omitempty" validate:"omitempty,max=60"`
	Excerpt         *string            `json:"excerpt,omitempty" validate:"omitempty,max=300"`
	Content         *[]ContentBlockDTO `json:"content,omitempty"`
	FeaturedImage   *string            `json:"featured_image,omitempty"`
	Tags            *[]string          `json:"tags,omitempty"`
	Category        *string            `json:"category,omitempty"`
	Status          *string            `json:"status,omitempty"`
	MetaTitle       *string            `json:"meta_title,omitempty"`
	MetaDescription *string            `json:"meta_description,omitempty"`
}

// PostDTO 帖子详情
type PostDTO struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"title"`
	Excerpt         string            `json:"excerpt"`
	Content         []ContentBlockDTO `json:"content"`
	FeaturedImage   string            `json:"featured_image,omitempty"`
	Tags            []string          `json:"tags"`
	Category        string            `json:"category"`
	Status          string            `json:"status"`
	MetaTitle       string            `json:"meta_title,omitempty"`
	MetaDescription string            `json:"meta_description,omitempty"`
	AuthorID        string            `json:"author_id"`
	AuthorName      string            `json:"author_name"`
	Views           int64             `json:"views"`
	Likes           int64             `json:"likes"`
	Comments        int64             `json:"comments"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

// PostListItemDTO 列表项，不含正文
type PostListItemDTO struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
	Status        string   `json:"status"`
	AuthorID      string   `json:"author_id"`
	AuthorName    string   `json:"author_name"`
	Views         int64    `json:"views"`
	Likes         int64    `json:"likes"`
	Comments      int64    `json:"comments"`
	CreatedAt     string   `json:"created_at"`
}

// PostPageDTO 分页返回
type PostPageDTO struct {
	List  []*PostListItemDTO `json:"list"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PostListQueryDTO 列表查询参数
type PostListQueryDTO struct {
	Status   string `form:"status"`
	Author   string `form:"author"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Page     int    `form:"page,default=1" validate:"omitempty,min=1"`
	Limit    int    `form:"limit,default=10" validate:"omitempty,min=1,max=50"`
}

// SlugCheckDTO slug 可用性检查结果
type SlugCheckDTO struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}
