package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "bamboo-moderator"
	JWTExpirationTime        = time.Hour * 24
)

// AdminClaims Token 中携带的版主身份信息
type AdminClaims struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}
