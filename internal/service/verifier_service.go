package service

import (
	"bamboo/internal/api/dto"
	"bamboo/internal/pkg/util"
	"bamboo/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type VerifierService interface {
	PickChallenge(ctx context.Context) (*dto.VerifierChallengeDTO, error)
}

type verifierServiceImpl struct {
	verifierRepo repository.VerifierRepo
}

func NewVerifierService(verifierRepo repository.VerifierRepo) VerifierService {
	return &verifierServiceImpl{
		verifierRepo: verifierRepo,
	}
}

// PickChallenge 随机抽一道题下发，answer 留在库里
func (s *verifierServiceImpl) PickChallenge(ctx context.Context) (*dto.VerifierChallengeDTO, error) {
	verifier, err := s.verifierRepo.PickRandom(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerifierNotFound
		}
		return nil, err
	}

	return &dto.VerifierChallengeDTO{
		ID:       util.EncodeID(verifier.ID),
		Question: verifier.Question,
	}, nil
}
