package util

import (
	"encoding/base64"
	"errors"
	"strconv"
)

var ErrBadCursor = errors.New("cursor 格式错误")

// EncodeID 将记录 ID 编码为不透明串，管理端分页游标与问答题 ID 共用这个编码
func EncodeID(id uint64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatUint(id, 10)))
}

// DecodeID 解析不透明 ID 串
func DecodeID(encoded string) (uint64, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrBadCursor
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, ErrBadCursor
	}
	return id, nil
}

// ParseNumberCursor 解析公开端游标，即上一页最后一条的公开编号
func ParseNumberCursor(cursor string) (uint64, error) {
	n, err := strconv.ParseUint(cursor, 10, 64)
	if err != nil {
		return 0, ErrBadCursor
	}
	return n, nil
}
