package repository

import (
	"bamboo/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// AssignNumber 的 CAS 重试上限，编号唯一索引冲突时重读 max 再试
const assignNumberRetries = 5

var (
	// ErrNumberAssigned 投稿已经有公开编号，不允许二次接受
	ErrNumberAssigned = errors.New("number already assigned")
	// ErrNumberConflict 编号分配重试耗尽
	ErrNumberConflict = errors.New("number assignment conflict")
)

// ListQuery getList 的查询参数。管理端游标落在 CursorID 上，公开端落在 CursorNumber 上，
// 两者为 nil 时表示第一页。
type ListQuery struct {
	Admin        bool
	Status       *string
	Count        int
	CursorID     *uint64
	CursorNumber *uint64
}

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	GetByHash(ctx context.Context, hash string) (*model.Post, error)
	GetByNumber(ctx context.Context, number uint64) (*model.Post, error)
	MaxNumber(ctx context.Context) (uint64, error)
	List(ctx context.Context, q ListQuery) ([]*model.Post, error)
	Edit(ctx context.Context, post *model.Post, newContent, newFbLink string) (*model.Post, error)
	AssignNumber(ctx context.Context, id uint64) (*model.Post, error)
	SetRejected(ctx context.Context, id uint64, reason string) error
	SetDeleted(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s PostRepoImpl) Create(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s PostRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("History").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetByHash(ctx context.Context, hash string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("History").Where("hash = ?", hash).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetByNumber(ctx context.Context, number uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("number = ?", number).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) MaxNumber(ctx context.Context) (uint64, error) {
	var max uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("COALESCE(MAX(number), 0)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// List 分页引擎。管理端按 id 分页：待审队列（PENDING）按提交顺序升序，
// 其余状态按最新在前降序；公开端固定 number 降序且只看 ACCEPTED。
func (s PostRepoImpl) List(ctx context.Context, q ListQuery) ([]*model.Post, error) {
	db := s.db.WithContext(ctx).Model(&model.Post{})

	if q.Admin {
		pending := q.Status != nil && *q.Status == model.PostStatusPending
		if q.Status != nil {
			db = db.Where("status = ?", *q.Status)
		}
		if pending {
			if q.CursorID != nil {
				db = db.Where("id > ?", *q.CursorID)
			}
			db = db.Order("id ASC")
		} else {
			if q.CursorID != nil {
				db = db.Where("id < ?", *q.CursorID)
			}
			db = db.Order("id DESC")
		}
		db = db.Preload("History")
	} else {
		// 公开端无视调用方传入的过滤条件，永远只吐已接受的投稿
		db = db.Where("status = ?", model.PostStatusAccepted)
		if q.CursorNumber != nil {
			db = db.Where("number < ?", *q.CursorNumber)
		}
		db = db.Order("number DESC")
	}

	var posts []*model.Post
	err := db.Limit(q.Count).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Edit 在一个事务里先追加编辑前快照，再替换字段。空串表示保持原值。
func (s PostRepoImpl) Edit(ctx context.Context, post *model.Post, newContent, newFbLink string) (*model.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snapshot := model.PostHistory{
			PostID:   post.ID,
			Content:  post.Content,
			EditedAt: tx.NowFunc(),
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if newContent != "" {
			updates["content"] = newContent
		}
		if newFbLink != "" {
			updates["fb_link"] = newFbLink
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.Post{}).Where("id = ?", post.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, post.ID)
}

// AssignNumber 接受投稿并分配公开编号。读 max 再写 max+1 本身没有隔离性，
// 依赖 number 上的唯一索引兜底：撞上并发分配时报唯一键冲突，重读 max 重试。
// WHERE number IS NULL 保证同一条投稿只会被编号一次。
func (s PostRepoImpl) AssignNumber(ctx context.Context, id uint64) (*model.Post, error) {
	for i := 0; i < assignNumberRetries; i++ {
		max, err := s.MaxNumber(ctx)
		if err != nil {
			return nil, err
		}
		next := max + 1

		res := s.db.WithContext(ctx).Model(&model.Post{}).
			Where("id = ? AND number IS NULL", id).
			Updates(map[string]interface{}{
				"number": next,
				"status": model.PostStatusAccepted,
			})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// 行不存在，或编号已被（并发地）分配过
			if _, err = s.GetByID(ctx, id); err != nil {
				return nil, err
			}
			return nil, ErrNumberAssigned
		}
		return s.GetByID(ctx, id)
	}
	return nil, ErrNumberConflict
}

func (s PostRepoImpl) SetRejected(ctx context.Context, id uint64, reason string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": model.PostStatusRejected,
			"reason": reason,
		}).Error
}

func (s PostRepoImpl) SetDeleted(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		Update("status", model.PostStatusDeleted).Error
}

// Delete 管理员硬删除，投稿与其编辑快照一并移除
func (s PostRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostHistory{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
