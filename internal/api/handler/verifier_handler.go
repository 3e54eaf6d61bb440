package handler

import (
	"bamboo/internal/pkg/response"
	"bamboo/internal/service"

	"github.com/gin-gonic/gin"
)

type VerifierHandler struct {
	verifierSvc service.VerifierService
}

func NewVerifierHandler(verifierSvc service.VerifierService) *VerifierHandler {
	return &VerifierHandler{
		verifierSvc: verifierSvc,
	}
}

// GetChallenge 随机下发一道投稿问答题
func (s *VerifierHandler) GetChallenge(c *gin.Context) {
	challenge, err := s.verifierSvc.PickChallenge(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, challenge)
}
