package model

// Verifier 投稿时的人机问答题
type Verifier struct {
	ID       uint64 `gorm:"primaryKey"`
	Question string `gorm:"type:varchar(255);not null" json:"question"`
	Answer   string `gorm:"type:varchar(255);not null" json:"-"`
}

func (Verifier) TableName() string {
	return "verifiers"
}

// IsCorrect 大小写敏感的精确比对
func (v *Verifier) IsCorrect(candidate string) bool {
	return v.Answer == candidate
}
