package api

import "bamboo/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler     *handler.PostHandler
	VerifierHandler *handler.VerifierHandler
	FeedHandler     *handler.FeedHandler
}
