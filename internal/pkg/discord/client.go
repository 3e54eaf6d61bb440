package discord

import (
	"bamboo/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notifier 版主通知通道，发送失败由调用方决定如何消化
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

type WebhookClient struct {
	client *resty.Client
	url    string
}

func NewWebhookClient(cfg config.DiscordConfig) *WebhookClient {
	return &WebhookClient{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    cfg.WebhookURL,
	}
}

// Notify 向 Discord Webhook 推送一条消息
func (s *WebhookClient) Notify(ctx context.Context, content string) error {
	if s.url == "" {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"content": content}).
		Post(s.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("discord webhook failed: %s", resp.Status())
	}
	return nil
}
