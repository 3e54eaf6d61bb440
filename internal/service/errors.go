package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	Gated               = 451
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPostNotFound        = errors.New("投稿不存在")
	ErrVerifierNotFound    = errors.New("问答题库为空")
	ErrVerifierIncorrect   = errors.New("人机问答未通过")
	ErrCaptchaIncorrect    = errors.New("CAPTCHA 校验未通过")
	ErrPostAlreadyAccepted = errors.New("投稿已被接受，不能重复接受")
	ErrPostNotPending      = errors.New("当前状态不允许该操作")
	ErrPostDeleted         = errors.New("投稿已被删除")
	ErrNumberConflict      = errors.New("编号分配冲突，请重试")
	ErrEditNothing         = errors.New("正文与链接至少要改一项")
	ErrReasonRequired      = errors.New("拒绝时必须填写理由")
	ErrSelfEditAccepted    = errors.New("已接受的投稿不能自助编辑")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrPostNotFound:        NotFound,
	ErrVerifierNotFound:    NotFound,
	ErrVerifierIncorrect:   Gated,
	ErrCaptchaIncorrect:    Gated,
	ErrPostAlreadyAccepted: Conflict,
	ErrPostNotPending:      Conflict,
	ErrPostDeleted:         Conflict,
	ErrNumberConflict:      Conflict,
	ErrEditNothing:         BadRequest,
	ErrReasonRequired:      BadRequest,
	ErrSelfEditAccepted:    Conflict,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
