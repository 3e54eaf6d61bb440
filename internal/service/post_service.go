package service

import (
	"bamboo/internal/api/dto"
	"bamboo/internal/model"
	"bamboo/internal/pkg/consts"
	"bamboo/internal/pkg/logger"
	"bamboo/internal/pkg/mongo"
	"bamboo/internal/pkg/util"
	"bamboo/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 推送给版主频道的消息
const (
	msgNewSubmission  = "有新的投稿！"
	msgDeleteRequest  = "收到删除投稿的请求！"
	numberLockTTL     = 5 * time.Second
	numberLockRetries = 25
)

type PostService interface {
	ListPosts(ctx context.Context, admin bool, q *dto.ListPostDTO) (*dto.PostPageDTO, error)
	CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.AuthorPostDTO, error)
	GetPostByHash(ctx context.Context, hash string) (*dto.AuthorPostDTO, error)
	GetPostByNumber(ctx context.Context, number uint64) (*dto.PublicPostDTO, error)
	NextNumber(ctx context.Context) (uint64, error)
	EditPost(ctx context.Context, id uint64, req *dto.EditPostDTO) (*dto.AdminPostDTO, error)
	SelfEditPost(ctx context.Context, hash string, req *dto.SelfEditPostDTO) (*dto.AuthorPostDTO, error)
	HardDeletePost(ctx context.Context, id uint64) error
	RequestDeletePost(ctx context.Context, hash string) error
}

// Notifier 与 Thumbnailer 是接受/投稿后的旁路副作用，只许失败不许拖垮主流程
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

type Thumbnailer interface {
	Render(ctx context.Context, post *model.Post) error
}

// CaptchaChecker 投稿前的 CAPTCHA 门禁
type CaptchaChecker interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// NumberLocker 编号分配的互斥锁，降低唯一索引上的冲突重试
type NumberLocker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{})
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	verifierRepo repository.VerifierRepo
	auditRepo    mongo.AuditRepo
	notifier     Notifier
	thumbnailer  Thumbnailer
	captcha      CaptchaChecker
	locker       NumberLocker
}

func NewPostService(
	postRepo repository.PostRepo,
	verifierRepo repository.VerifierRepo,
	auditRepo mongo.AuditRepo,
	notifier Notifier,
	thumbnailer Thumbnailer,
	captcha CaptchaChecker,
	locker NumberLocker,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		verifierRepo: verifierRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
		thumbnailer:  thumbnailer,
		captcha:      captcha,
		locker:       locker,
	}
}

// ListPosts 游标分页。管理端游标是 base64 的记录 ID，公开端游标是公开编号本身。
func (s *postServiceImpl) ListPosts(ctx context.Context, admin bool, q *dto.ListPostDTO) (*dto.PostPageDTO, error) {
	query := repository.ListQuery{
		Admin: admin,
		Count: q.Count,
	}

	if admin {
		if q.Status != "" {
			status := q.Status
			query.Status = &status
		}
		if q.Cursor != "" {
			id, err := util.DecodeID(q.Cursor)
			if err != nil {
				return nil, ErrParamInvalid
			}
			query.CursorID = &id
		}
	} else if q.Cursor != "" {
		number, err := util.ParseNumberCursor(q.Cursor)
		if err != nil {
			return nil, ErrParamInvalid
		}
		query.CursorNumber = &number
	}

	posts, err := s.postRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	page := &dto.PostPageDTO{
		HasNext: len(posts) == q.Count,
	}

	if admin {
		items := make([]*dto.AdminPostDTO, 0, len(posts))
		for _, p := range posts {
			items = append(items, toAdminPostDTO(p))
		}
		page.Posts = items
		if len(posts) > 0 {
			page.Cursor = util.EncodeID(posts[len(posts)-1].ID)
		}
	} else {
		items := make([]*dto.PublicPostDTO, 0, len(posts))
		for _, p := range posts {
			items = append(items, toPublicPostDTO(p))
		}
		page.Posts = items
		if last := lastNumber(posts); last != nil {
			page.Cursor = strconv.FormatUint(*last, 10)
		}
	}

	return page, nil
}

// CreatePost 校验 CAPTCHA 与问答题后落库。两道门禁都按"访问受限"处理，
// 不向潜在的滥用方暴露失败细节。
func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.AuthorPostDTO, error) {
	ok, err := s.captcha.Verify(ctx, req.Captcha)
	if err != nil {
		log.ErrorContext(ctx, "captcha verify error", "err", err)
		return nil, UnExpectedError
	}
	if !ok {
		return nil, ErrCaptchaIncorrect
	}

	verifierID, err := util.DecodeID(req.Verifier.ID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	verifier, err := s.verifierRepo.GetByID(ctx, verifierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerifierIncorrect
		}
		return nil, err
	}
	if !verifier.IsCorrect(req.Verifier.Answer) {
		return nil, ErrVerifierIncorrect
	}

	post := &model.Post{
		Title:   req.Title,
		Content: req.Content,
		Tag:     req.Tag,
		Status:  model.PostStatusPending,
		Hash:    util.NewPostHash(),
	}
	if err = s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.notifyAsync(ctx, msgNewSubmission)
	s.auditAsync(ctx, post.ID, mongo.AuditActionCreate, consts.OperatorAuthor, "")

	return toAuthorPostDTO(post), nil
}

func (s *postServiceImpl) GetPostByHash(ctx context.Context, hash string) (*dto.AuthorPostDTO, error) {
	post, err := s.postRepo.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return toAuthorPostDTO(post), nil
}

// GetPostByNumber 公开编号只对已接受的投稿有意义
func (s *postServiceImpl) GetPostByNumber(ctx context.Context, number uint64) (*dto.PublicPostDTO, error) {
	post, err := s.postRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusAccepted {
		return nil, ErrPostNotFound
	}
	return toPublicPostDTO(post), nil
}

func (s *postServiceImpl) NextNumber(ctx context.Context) (uint64, error) {
	max, err := s.postRepo.MaxNumber(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// EditPost 管理端 PATCH：带 status 走状态流转，不带 status 走编辑
func (s *postServiceImpl) EditPost(ctx context.Context, id uint64, req *dto.EditPostDTO) (*dto.AdminPostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	switch req.Status {
	case model.PostStatusAccepted:
		post, err = s.acceptPost(ctx, post)
	case model.PostStatusRejected:
		post, err = s.rejectPost(ctx, post, req.Reason)
	case model.PostStatusDeleted:
		post, err = s.softDeletePost(ctx, post, consts.OperatorAdmin)
	case "":
		post, err = s.editPost(ctx, post, req.Content, req.FbLink, consts.OperatorAdmin)
	default:
		return nil, ErrParamInvalid
	}
	if err != nil {
		return nil, err
	}

	return toAdminPostDTO(post), nil
}

// SelfEditPost 投稿者凭 hash 的自助编辑，已接受的投稿不再开放
func (s *postServiceImpl) SelfEditPost(ctx context.Context, hash string, req *dto.SelfEditPostDTO) (*dto.AuthorPostDTO, error) {
	post, err := s.postRepo.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.Status == model.PostStatusAccepted {
		return nil, ErrSelfEditAccepted
	}

	post, err = s.editPost(ctx, post, req.Content, req.FbLink, consts.OperatorAuthor)
	if err != nil {
		return nil, err
	}
	return toAuthorPostDTO(post), nil
}

func (s *postServiceImpl) HardDeletePost(ctx context.Context, id uint64) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditAsync(ctx, id, mongo.AuditActionHardDelete, consts.OperatorAdmin, "")
	return nil
}

// RequestDeletePost 公开端自助删除：软删保留内容供审计，并通知版主
func (s *postServiceImpl) RequestDeletePost(ctx context.Context, hash string) error {
	post, err := s.postRepo.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if _, err = s.softDeletePost(ctx, post, consts.OperatorAuthor); err != nil {
		return err
	}

	s.notifyAsync(ctx, msgDeleteRequest)
	return nil
}

// acceptPost 状态机里唯一依赖跨记录聚合的转移。Redis 互斥锁把并发接受排成队，
// 锁失效时 number 唯一索引 + CAS 重试仍然保证不重号。
func (s *postServiceImpl) acceptPost(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post.Accepted() {
		return nil, ErrPostAlreadyAccepted
	}
	if post.Status == model.PostStatusDeleted {
		return nil, ErrPostDeleted
	}

	if s.locker != nil {
		lockToken := uuid.NewString()
		ok, err := s.locker.TryLock(ctx, consts.PostNumberLock, lockToken, numberLockTTL, numberLockRetries)
		if err != nil {
			log.WarnContext(ctx, "number lock unavailable, falling back to index retry", "err", err)
		} else if !ok {
			return nil, ErrNumberConflict
		} else {
			defer s.locker.UnLock(ctx, consts.PostNumberLock, lockToken)
		}
	}

	accepted, err := s.postRepo.AssignNumber(ctx, post.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNumberAssigned):
			return nil, ErrPostAlreadyAccepted
		case errors.Is(err, repository.ErrNumberConflict):
			return nil, ErrNumberConflict
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	s.renderThumbnailAsync(ctx, accepted)
	s.auditAsync(ctx, accepted.ID, mongo.AuditActionAccept, consts.OperatorAdmin,
		strconv.FormatUint(*accepted.Number, 10))

	return accepted, nil
}

func (s *postServiceImpl) rejectPost(ctx context.Context, post *model.Post, reason string) (*model.Post, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if post.Status != model.PostStatusPending {
		return nil, ErrPostNotPending
	}

	if err := s.postRepo.SetRejected(ctx, post.ID, reason); err != nil {
		return nil, err
	}

	s.auditAsync(ctx, post.ID, mongo.AuditActionReject, consts.OperatorAdmin, reason)
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *postServiceImpl) softDeletePost(ctx context.Context, post *model.Post, operator string) (*model.Post, error) {
	if post.Status == model.PostStatusDeleted {
		return nil, ErrPostDeleted
	}

	if err := s.postRepo.SetDeleted(ctx, post.ID); err != nil {
		return nil, err
	}

	s.auditAsync(ctx, post.ID, mongo.AuditActionSoftDelete, operator, "")
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *postServiceImpl) editPost(ctx context.Context, post *model.Post, content, fbLink, operator string) (*model.Post, error) {
	if content == "" && fbLink == "" {
		return nil, ErrEditNothing
	}

	edited, err := s.postRepo.Edit(ctx, post, content, fbLink)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, post.ID, mongo.AuditActionEdit, operator, "")
	return edited, nil
}

// notifyAsync fire-and-forget，通知失败只记日志
func (s *postServiceImpl) notifyAsync(ctx context.Context, content string) {
	if s.notifier == nil {
		return
	}
	bgCtx := detachContext(ctx)
	go func() {
		notifyCtx, cancel := context.WithTimeout(bgCtx, 10*time.Second)
		defer cancel()
		if err := s.notifier.Notify(notifyCtx, content); err != nil {
			log.ErrorContext(bgCtx, "discord notify failed", "err", err)
		}
	}()
}

// renderThumbnailAsync fire-and-forget，渲染失败只记日志，后续由补偿任务兜底
func (s *postServiceImpl) renderThumbnailAsync(ctx context.Context, post *model.Post) {
	if s.thumbnailer == nil {
		return
	}
	bgCtx := detachContext(ctx)
	go func() {
		renderCtx, cancel := context.WithTimeout(bgCtx, 30*time.Second)
		defer cancel()
		if err := s.thumbnailer.Render(renderCtx, post); err != nil {
			log.ErrorContext(bgCtx, "thumbnail render failed", "post_id", post.ID, "err", err)
		}
	}()
}

// auditAsync 审核流水是旁路数据，落盘失败不影响主流程
func (s *postServiceImpl) auditAsync(ctx context.Context, postID uint64, action, operator, detail string) {
	if s.auditRepo == nil {
		return
	}

	var traceID string
	if id, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		traceID = id
	}
	bgCtx := detachContext(ctx)

	go func() {
		auditCtx, cancel := context.WithTimeout(bgCtx, 5*time.Second)
		defer cancel()
		entry := &mongo.AuditLog{
			PostID:    postID,
			Action:    action,
			Operator:  operator,
			Detail:    detail,
			TraceID:   traceID,
			CreatedAt: time.Now(),
		}
		if err := s.auditRepo.Append(auditCtx, entry); err != nil {
			log.ErrorContext(bgCtx, "audit append failed", "post_id", postID, "action", action, "err", err)
		}
	}()
}

// detachContext 保留 trace_id 但脱离请求生命周期，旁路任务不随请求取消
func detachContext(ctx context.Context) context.Context {
	bgCtx := context.Background()
	if traceID, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		bgCtx = context.WithValue(bgCtx, logger.TraceIDKey, traceID)
	}
	return bgCtx
}

func lastNumber(posts []*model.Post) *uint64 {
	if len(posts) == 0 {
		return nil
	}
	return posts[len(posts)-1].Number
}
