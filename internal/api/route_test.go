package api

import (
	"bamboo/internal/api/config"
	"bamboo/internal/api/dto"
	"bamboo/internal/api/handler"
	"bamboo/internal/pkg/security"
	"bamboo/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostService struct {
	lastListAdmin bool
	hardDeletedID uint64
	requestedHash string
}

func (s *stubPostService) ListPosts(_ context.Context, admin bool, _ *dto.ListPostDTO) (*dto.PostPageDTO, error) {
	s.lastListAdmin = admin
	return &dto.PostPageDTO{Posts: []*dto.PublicPostDTO{}}, nil
}

func (s *stubPostService) CreatePost(_ context.Context, _ *dto.CreatePostDTO) (*dto.AuthorPostDTO, error) {
	return &dto.AuthorPostDTO{Hash: "abc123"}, nil
}

func (s *stubPostService) GetPostByHash(_ context.Context, hash string) (*dto.AuthorPostDTO, error) {
	return &dto.AuthorPostDTO{Hash: hash}, nil
}

func (s *stubPostService) GetPostByNumber(_ context.Context, number uint64) (*dto.PublicPostDTO, error) {
	return &dto.PublicPostDTO{Number: &number}, nil
}

func (s *stubPostService) NextNumber(_ context.Context) (uint64, error) {
	return 8, nil
}

func (s *stubPostService) EditPost(_ context.Context, id uint64, _ *dto.EditPostDTO) (*dto.AdminPostDTO, error) {
	return &dto.AdminPostDTO{AuthorPostDTO: dto.AuthorPostDTO{PublicPostDTO: dto.PublicPostDTO{ID: id}}}, nil
}

func (s *stubPostService) SelfEditPost(_ context.Context, hash string, _ *dto.SelfEditPostDTO) (*dto.AuthorPostDTO, error) {
	return &dto.AuthorPostDTO{Hash: hash}, nil
}

func (s *stubPostService) HardDeletePost(_ context.Context, id uint64) error {
	s.hardDeletedID = id
	return nil
}

func (s *stubPostService) RequestDeletePost(_ context.Context, hash string) error {
	s.requestedHash = hash
	return nil
}

type stubVerifierService struct{}

func (stubVerifierService) PickChallenge(_ context.Context) (*dto.VerifierChallengeDTO, error) {
	return &dto.VerifierChallengeDTO{ID: "MQ==", Question: "校门口的奶茶店叫什么"}, nil
}

type stubFeedService struct{}

func (stubFeedService) BuildRSS(_ context.Context) (string, error) {
	return `<?xml version="1.0"?><rss/>`, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubPostService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Cfg = &config.Config{}

	postSvc := &stubPostService{}
	router := SetupRouter(&HandlersGroup{
		PostHandler:     handler.NewPostHandler(postSvc),
		VerifierHandler: handler.NewVerifierHandler(stubVerifierService{}),
		FeedHandler:     handler.NewFeedHandler(stubFeedService{}),
	})
	return router, postSvc
}

var _ service.PostService = (*stubPostService)(nil)

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeCode(t *testing.T, w *httptest.ResponseRecorder) float64 {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, ok := body["code"].(float64)
	require.True(t, ok, "响应缺少 code 字段: %s", w.Body.String())
	return code
}

func adminHeader(t *testing.T) string {
	t.Helper()
	token, err := security.GenerateToken("moderator-a", []string{"ADMIN"})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestListView(t *testing.T) {
	router, postSvc := newTestRouter(t)

	t.Run("guest list is public view", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
		assert.Equal(t, float64(200), envelopeCode(t, w))
		assert.False(t, postSvc.lastListAdmin)
	})

	t.Run("admin token switches to admin view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Authorization", adminHeader(t))
		w := serve(router, req)
		assert.Equal(t, float64(200), envelopeCode(t, w))
		assert.True(t, postSvc.lastListAdmin)
	})

	t.Run("broken token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := serve(router, req)
		assert.Equal(t, float64(401), envelopeCode(t, w))
	})

	t.Run("count out of range", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/posts?count=999", nil))
		assert.Equal(t, float64(400), envelopeCode(t, w))
	})
}

func TestCreateRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("valid submission returns 201 with location", func(t *testing.T) {
		payload := map[string]interface{}{
			"content": "正文",
			"tag":     "life",
			"captcha": "tok",
			"verifier": map[string]string{
				"id":     "MQ==",
				"answer": "竹里馆",
			},
		}
		raw, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/posts/abc123", w.Header().Get("Location"))
	})

	t.Run("missing content is a validation failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader([]byte(`{"tag":"life"}`)))
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)
		assert.Equal(t, float64(400), envelopeCode(t, w))
	})
}

func TestDeleteRouteDualMode(t *testing.T) {
	router, postSvc := newTestRouter(t)

	t.Run("guest argument is treated as hash", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodDelete, "/api/posts/somehash", nil))
		assert.Equal(t, float64(200), envelopeCode(t, w))
		assert.Equal(t, "somehash", postSvc.requestedHash)
		assert.Zero(t, postSvc.hardDeletedID)
	})

	t.Run("admin argument is treated as id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/123", nil)
		req.Header.Set("Authorization", adminHeader(t))
		w := serve(router, req)
		assert.Equal(t, float64(200), envelopeCode(t, w))
		assert.Equal(t, uint64(123), postSvc.hardDeletedID)
	})

	t.Run("admin with non-numeric id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/posts/nothex", nil)
		req.Header.Set("Authorization", adminHeader(t))
		w := serve(router, req)
		assert.Equal(t, float64(400), envelopeCode(t, w))
	})
}

func TestModerationRouteRequiresAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewReader([]byte(`{"status":"ACCEPTED"}`))
	req := httptest.NewRequest(http.MethodPatch, "/api/posts/1", body)
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)
	assert.Equal(t, float64(401), envelopeCode(t, w))

	req = httptest.NewRequest(http.MethodPatch, "/api/posts/1", bytes.NewReader([]byte(`{"status":"ACCEPTED"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", adminHeader(t))
	w = serve(router, req)
	assert.Equal(t, float64(200), envelopeCode(t, w))
}

func TestNumberRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("next number preview", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/posts/number", nil))
		assert.Equal(t, float64(200), envelopeCode(t, w))
		assert.Contains(t, w.Body.String(), `"newNumber":8`)
	})

	t.Run("lookup by number", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/posts/number/5", nil))
		assert.Equal(t, float64(200), envelopeCode(t, w))
	})

	t.Run("non numeric number", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/posts/number/abc", nil))
		assert.Equal(t, float64(400), envelopeCode(t, w))
	})
}

func TestVerifyRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/verify", nil))
	assert.Equal(t, float64(200), envelopeCode(t, w))
	assert.Contains(t, w.Body.String(), "奶茶店")
}

func TestRSSRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/rss", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "rss+xml")
	assert.Contains(t, w.Body.String(), "<rss")
}
