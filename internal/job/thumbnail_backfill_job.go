package job

import (
	"bamboo/internal/pkg/logger"
	"bamboo/internal/pkg/minio"
	"bamboo/internal/pkg/thumbnail"
	"bamboo/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const backfillPageSize = 100

// ThumbnailBackfillJob 定期补齐已接受投稿缺失的缩略图
type ThumbnailBackfillJob struct {
	postRepo repository.PostRepo
	renderer thumbnail.Renderer
}

func NewThumbnailBackfillJob(postRepo repository.PostRepo, renderer thumbnail.Renderer) *ThumbnailBackfillJob {
	return &ThumbnailBackfillJob{
		postRepo: postRepo,
		renderer: renderer,
	}
}

func (s *ThumbnailBackfillJob) Run() {
	traceID := "job-thumbnail-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	var cursor *uint64
	scanned, rendered := 0, 0

	for {
		posts, err := s.postRepo.List(ctx, repository.ListQuery{
			Count:        backfillPageSize,
			CursorNumber: cursor,
		})
		if err != nil {
			log.ErrorContext(ctx, "list accepted posts error", "err", err)
			return
		}

		for _, post := range posts {
			if post.Number == nil {
				continue
			}
			scanned++

			exists, err := minio.FileExists(ctx, thumbnail.ObjectName(*post.Number))
			if err != nil {
				log.ErrorContext(ctx, "stat thumbnail error", "number", *post.Number, "err", err)
				continue
			}
			if exists {
				continue
			}

			if err = s.renderer.Render(ctx, post); err != nil {
				log.ErrorContext(ctx, "render thumbnail error", "number", *post.Number, "err", err)
				continue
			}
			rendered++
		}

		if len(posts) < backfillPageSize {
			break
		}
		cursor = posts[len(posts)-1].Number
	}

	log.InfoContext(ctx, "ThumbnailBackfillJob finished", "scanned", scanned, "rendered", rendered)
}
