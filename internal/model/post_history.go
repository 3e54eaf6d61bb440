package model

import (
	"time"
)

// PostHistory 每次编辑前的正文快照，只追加不回收
type PostHistory struct {
	ID       uint64    `gorm:"primaryKey"`
	PostID   uint64    `gorm:"not null;index:idx_history_post_id" json:"post_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	EditedAt time.Time `gorm:"not null" json:"edited_at"`
}

func (PostHistory) TableName() string {
	return "post_histories"
}
