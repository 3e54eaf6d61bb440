package handler

import (
	"bamboo/internal/api/dto"
	"bamboo/internal/pkg/response"
	"bamboo/internal/service"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var listDTO dto.ListPostDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListPosts(c.Request.Context(), c.GetBool("is_admin"), &listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedSuccess(c, fmt.Sprintf("/api/posts/%s", post.Hash), post)
}

func (s *PostHandler) GetPostByHash(c *gin.Context) {
	hash := c.Param("hash")

	post, err := s.postSvc.GetPostByHash(c.Request.Context(), hash)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPostByNumber(c *gin.Context) {
	numberStr := c.Param("number")

	number, err := strconv.ParseUint(numberStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPostByNumber(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// NextNumber 预览下一个将要分配的公开编号
func (s *PostHandler) NextNumber(c *gin.Context) {
	next, err := s.postSvc.NextNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.NextNumberDTO{NewNumber: next})
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postIDStr := c.Param("post_id")

	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.EditPostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.EditPost(c.Request.Context(), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) SelfEditPost(c *gin.Context) {
	hash := c.Param("hash")

	var req dto.SelfEditPostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.SelfEditPost(c.Request.Context(), hash, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 管理员按 ID 硬删除；投稿者按 Hash 发起删除请求
func (s *PostHandler) DeletePost(c *gin.Context) {
	arg := c.Param("arg")

	if c.GetBool("is_admin") {
		postID, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		if err = s.postSvc.HardDeletePost(c.Request.Context(), postID); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, nil)
		return
	}

	if err := s.postSvc.RequestDeletePost(c.Request.Context(), arg); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
