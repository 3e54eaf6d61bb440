package repository

import (
	"bamboo/internal/model"
	"context"
	"math/rand"

	"gorm.io/gorm"
)

type VerifierRepo interface {
	GetByID(ctx context.Context, id uint64) (*model.Verifier, error)
	PickRandom(ctx context.Context) (*model.Verifier, error)
}

type VerifierRepoImpl struct {
	db *gorm.DB
}

func NewVerifierRepository(db *gorm.DB) VerifierRepo {
	return &VerifierRepoImpl{
		db: db,
	}
}

func (s VerifierRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Verifier, error) {
	var verifier model.Verifier
	err := s.db.WithContext(ctx).First(&verifier, id).Error
	if err != nil {
		return nil, err
	}
	return &verifier, nil
}

// PickRandom 均匀抽取一道题。count 与 offset 两步放在同一个事务里，
// 并按 id 固定枚举顺序，两次读取之间集合不会变，抽样才是真均匀的。
func (s *VerifierRepoImpl) PickRandom(ctx context.Context) (*model.Verifier, error) {
	var verifier model.Verifier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Verifier{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		offset := rand.Intn(int(count))
		return tx.Order("id ASC").Offset(offset).First(&verifier).Error
	})
	if err != nil {
		return nil, err
	}
	return &verifier, nil
}
