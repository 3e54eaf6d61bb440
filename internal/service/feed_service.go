package service

import (
	"bamboo/internal/api/config"
	"bamboo/internal/model"
	"bamboo/internal/pkg/consts"
	"bamboo/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/gorilla/feeds"
)

// FeedCache RSS 渲染结果的短时缓存
type FeedCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, xml string) error
}

type FeedService interface {
	BuildRSS(ctx context.Context) (string, error)
}

type feedServiceImpl struct {
	postRepo repository.PostRepo
	cache    FeedCache
	board    config.BoardConfig
}

func NewFeedService(postRepo repository.PostRepo, cache FeedCache, board config.BoardConfig) FeedService {
	return &feedServiceImpl{
		postRepo: postRepo,
		cache:    cache,
		board:    board,
	}
}

// BuildRSS 取最新一页已接受的投稿渲染成 RSS XML
func (s *feedServiceImpl) BuildRSS(ctx context.Context) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			log.WarnContext(ctx, "feed cache read failed", "err", err)
		} else if cached != "" {
			return cached, nil
		}
	}

	posts, err := s.postRepo.List(ctx, repository.ListQuery{
		Admin: false,
		Count: consts.DefaultListCount,
	})
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       s.board.Title,
		Description: s.board.Description,
		Link:        &feeds.Link{Href: s.board.FeedURL},
		Created:     time.Now(),
	}

	for _, post := range posts {
		feed.Items = append(feed.Items, s.toFeedItem(post))
	}

	xml, err := feed.ToRss()
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err = s.cache.Set(ctx, xml); err != nil {
			log.WarnContext(ctx, "feed cache write failed", "err", err)
		}
	}

	return xml, nil
}

func (s *feedServiceImpl) toFeedItem(post *model.Post) *feeds.Item {
	var number uint64
	if post.Number != nil {
		number = *post.Number
	}
	link := fmt.Sprintf("%s/post/%d", s.board.SiteURL, number)

	return &feeds.Item{
		Id:          fmt.Sprintf("%d", post.ID),
		Title:       post.Title,
		Link:        &feeds.Link{Href: link},
		Description: post.Tag,
		Content:     post.Content,
		Created:     post.CreatedAt,
	}
}
