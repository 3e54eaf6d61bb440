package service

import (
	"bamboo/internal/api/dto"
	"bamboo/internal/model"
	"bamboo/internal/pkg/util"
	"bamboo/internal/repository"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Post{}, &model.PostHistory{}, &model.Verifier{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(_ context.Context, _ string) (bool, error) {
	return f.ok, f.err
}

type fakeNotifier struct {
	messages chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{messages: make(chan string, 16)}
}

func (f *fakeNotifier) Notify(_ context.Context, content string) error {
	f.messages <- content
	return nil
}

// wait 旁路通知是异步发出的，测试里等一小会儿
func (f *fakeNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-f.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("没有等到通知")
		return ""
	}
}

type fakeLocker struct{}

func (fakeLocker) TryLock(_ context.Context, _ string, _ interface{}, _ time.Duration, _ int) (bool, error) {
	return true, nil
}

func (fakeLocker) UnLock(_ context.Context, _ string, _ interface{}) {}

type testEnv struct {
	db       *gorm.DB
	postRepo repository.PostRepo
	verifier *model.Verifier
	captcha  *fakeCaptcha
	notifier *fakeNotifier
	svc      PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	postRepo := repository.NewPostRepository(db)
	verifierRepo := repository.NewVerifierRepository(db)

	verifier := &model.Verifier{Question: "校门口的奶茶店叫什么", Answer: "竹里馆"}
	require.NoError(t, db.Create(verifier).Error)

	captcha := &fakeCaptcha{ok: true}
	notifier := newFakeNotifier()

	svc := NewPostService(postRepo, verifierRepo, nil, notifier, nil, captcha, fakeLocker{})

	return &testEnv{
		db:       db,
		postRepo: postRepo,
		verifier: verifier,
		captcha:  captcha,
		notifier: notifier,
		svc:      svc,
	}
}

func (e *testEnv) createDTO(content string) *dto.CreatePostDTO {
	return &dto.CreatePostDTO{
		Title:   "测试投稿",
		Content: content,
		Tag:     "life",
		Captcha: "captcha-token",
		Verifier: dto.VerifierAnswerDTO{
			ID:     util.EncodeID(e.verifier.ID),
			Answer: "竹里馆",
		},
	}
}

func (e *testEnv) mustCreate(t *testing.T, content string) *dto.AuthorPostDTO {
	t.Helper()
	post, err := e.svc.CreatePost(context.Background(), e.createDTO(content))
	require.NoError(t, err)
	// 吃掉新投稿的通知，避免串到后面的断言
	e.notifier.wait(t)
	return post
}

func (e *testEnv) mustAccept(t *testing.T, id uint64) *dto.AdminPostDTO {
	t.Helper()
	post, err := e.svc.EditPost(context.Background(), id, &dto.EditPostDTO{Status: model.PostStatusAccepted})
	require.NoError(t, err)
	return post
}

func acceptedNumber(t *testing.T, post *dto.AdminPostDTO) uint64 {
	t.Helper()
	require.NotNil(t, post.Number)
	return *post.Number
}
