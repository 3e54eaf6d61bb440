package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewPostHash 生成投稿的自助管理令牌，64 位十六进制随机串。
// 匿名投稿者没有账号，这个串是其编辑/删除自己投稿的唯一凭据。
func NewPostHash() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
