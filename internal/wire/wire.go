package wire

import (
	"bamboo/internal/api"
	"bamboo/internal/api/config"
	"bamboo/internal/api/handler"
	"bamboo/internal/job"
	"bamboo/internal/pkg/captcha"
	"bamboo/internal/pkg/cron"
	"bamboo/internal/pkg/discord"
	pkgmongo "bamboo/internal/pkg/mongo"
	"bamboo/internal/pkg/thumbnail"
	"bamboo/internal/repository"
	"bamboo/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	verifierRepo := repository.NewVerifierRepository(db)
	auditRepo := pkgmongo.NewAuditRepo(mongoDB)

	notifier := discord.NewWebhookClient(cfg.Discord)
	captchaClient := captcha.NewRecaptchaClient(cfg.Recaptcha)
	renderer := thumbnail.NewMinioRenderer(cfg.Board)

	postService := service.NewPostService(
		postRepo,
		verifierRepo,
		auditRepo,
		notifier,
		renderer,
		captchaClient,
		service.NewRedisNumberLocker(),
	)
	verifierService := service.NewVerifierService(verifierRepo)
	feedService := service.NewFeedService(postRepo, service.NewRedisFeedCache(), cfg.Board)

	handlers := &api.HandlersGroup{
		PostHandler:     handler.NewPostHandler(postService),
		VerifierHandler: handler.NewVerifierHandler(verifierService),
		FeedHandler:     handler.NewFeedHandler(feedService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewThumbnailBackfillJob(postRepo, renderer))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
