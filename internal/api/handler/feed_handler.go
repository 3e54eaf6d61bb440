package handler

import (
	"bamboo/internal/pkg/response"
	"bamboo/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// GetRSS 输出最新已接受投稿的 RSS 订阅源
func (s *FeedHandler) GetRSS(c *gin.Context) {
	xml, err := s.feedSvc.BuildRSS(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(xml))
}
