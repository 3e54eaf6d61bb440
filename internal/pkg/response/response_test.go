package response

import (
	"bamboo/internal/service"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, handle func(c *gin.Context)) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handle(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccess(t *testing.T) {
	status, body := record(t, func(c *gin.Context) {
		Success(c, gin.H{"hello": "world"})
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(Ok), body["code"])
	assert.Equal(t, "success", body["message"])
}

func TestCreatedSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	CreatedSuccess(c, "/api/posts/abc", gin.H{"hash": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/posts/abc", w.Header().Get("Location"))
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrPostNotFound, NotFound},
		{"conflict", service.ErrPostAlreadyAccepted, Conflict},
		{"gated captcha", service.ErrCaptchaIncorrect, Gated},
		{"gated verifier", service.ErrVerifierIncorrect, Gated},
		{"bad request", service.ErrReasonRequired, BadRequest},
		{"unknown error is 500", errors.New("boom"), InternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, body := record(t, func(c *gin.Context) {
				Error(c, tc.err)
			})
			assert.Equal(t, float64(tc.code), body["code"])
		})
	}
}
