package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{
		postService: s,
	}
}

// CreatePost 创建帖子
func (h *PostHandler) CreatePost(c *gin.Context) {
	var createDTO dto.PostCreateDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), currentActor(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

// GetPostBySlug 帖子详情
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.postService.GetPostBySlug(c.Request.Context(), currentActor(c), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

// ListPosts 帖子列表
func (h *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.postService.ListPosts(c.Request.Context(), currentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, page)
}

// SearchPosts 全文检索
func (h *PostHandler) SearchPosts(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.postService.SearchPosts(c.Request.Context(), keyword, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePost 部分修改帖子
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var patch dto.PostPatchDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, err)
		return
	}

	postID := c.Param("post_id")
	post, err := h.postService.UpdatePost(c.Request.Context(), currentActor(c), postID, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

// DeletePost 删除帖子
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")

	if err := h.postService.DeletePost(c.Request.Context(), currentActor(c), postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// LikePost 点赞
func (h *PostHandler) LikePost(c *gin.Context) {
	postID := c.Param("post_id")

	if err := h.postService.LikePost(c.Request.Context(), currentActor(c), postID, true); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UnlikePost 取消点赞
func (h *PostHandler) UnlikePost(c *gin.Context) {
	postID := c.Param("post_id")

	if err := h.postService.LikePost(c.Request.Context(), currentActor(c), postID, false); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CheckSlug slug 可用性
func (h *PostHandler) CheckSlug(c *gin.Context) {
	slug := c.Query("slug")

	result, err := h.postService.CheckSlug(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Categories 分类枚举
func (h *PostHandler) Categories(c *gin.Context) {
	response.Success(c, h.postService.Categories())
}
