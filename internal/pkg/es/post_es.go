package es

import "time"

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	PlainContent string    `json:"plain_content"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
}
