package model

import (
	"time"
)

// 投稿状态机：PENDING -> {ACCEPTED, REJECTED, DELETED}；REJECTED -> {ACCEPTED, DELETED}；
// ACCEPTED 不可重复进入；DELETED 对公开端是终态（管理员硬删除不走状态机）。
const (
	PostStatusPending  = "PENDING"
	PostStatusAccepted = "ACCEPTED"
	PostStatusRejected = "REJECTED"
	PostStatusDeleted  = "DELETED"
)

type Post struct {
	ID      uint64  `gorm:"primaryKey"`
	Number  *uint64 `gorm:"uniqueIndex:idx_post_number" json:"number"` // 公开编号，接受时一次性分配
	Title   string  `gorm:"type:varchar(255)" json:"title"`
	Content string  `gorm:"type:text;not null" json:"content"`
	Tag     string  `gorm:"type:varchar(64);not null" json:"tag"`
	Status  string  `gorm:"type:varchar(16);not null;default:PENDING;index:idx_post_status" json:"status"`
	Reason  string  `gorm:"type:varchar(255)" json:"reason"`
	FbLink  string  `gorm:"type:varchar(512)" json:"fb_link"`
	Hash    string  `gorm:"type:char(64);not null;uniqueIndex:idx_post_hash" json:"hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	History []PostHistory `gorm:"foreignKey:PostID;references:ID" json:"history"`
}

func (Post) TableName() string {
	return "posts"
}

// Accepted 是否已分配公开编号
func (p *Post) Accepted() bool {
	return p.Number != nil
}
