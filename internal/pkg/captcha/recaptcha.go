package captcha

import (
	"bamboo/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Checker CAPTCHA 校验器
type Checker interface {
	Verify(ctx context.Context, token string) (bool, error)
}

type RecaptchaClient struct {
	client    *resty.Client
	secret    string
	verifyURL string
}

func NewRecaptchaClient(cfg config.RecaptchaConfig) *RecaptchaClient {
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &RecaptchaClient{
		client:    resty.New().SetTimeout(10 * time.Second),
		secret:    cfg.Secret,
		verifyURL: verifyURL,
	}
}

// Verify 调用 siteverify 接口，只关心 success 位
func (s *RecaptchaClient) Verify(ctx context.Context, token string) (bool, error) {
	var result struct {
		Success bool `json:"success"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   s.secret,
			"response": token,
		}).
		SetResult(&result).
		Post(s.verifyURL)
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("recaptcha verify failed: %s", resp.Status())
	}

	return result.Success, nil
}
