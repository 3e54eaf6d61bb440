package api

import (
	"bamboo/internal/api/middleware"
	"bamboo/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.GET("/verify", group.VerifierHandler.GetChallenge)
		apiGroup.GET("/rss", group.FeedHandler.GetRSS)

		postGroup := apiGroup.Group("/posts")
		{
			// 无需凭证即可访问的接口
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/number", group.PostHandler.NextNumber)
			postGroup.GET("/number/:number", group.PostHandler.GetPostByNumber)
			postGroup.GET("/:hash", group.PostHandler.GetPostByHash)
			postGroup.PATCH("/self/:hash", group.PostHandler.SelfEditPost)

			// 带了 Token 即按管理员视角处理，否则按游客视角处理
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.DELETE("/:arg", group.PostHandler.DeletePost)
			}

			// 需要管理员角色
			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
			}
		}
	}

	return r
}
