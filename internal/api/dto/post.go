package dto

// VerifierAnswerDTO 投稿时附带的问答校验
type VerifierAnswerDTO struct {
	ID     string `json:"id" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// CreatePostDTO 新投稿
type CreatePostDTO struct {
	Title    string            `json:"title" binding:"omitempty,max=255"`
	Content  string            `json:"content" binding:"required,min=1"`
	Tag      string            `json:"tag" binding:"required,min=1,max=64"`
	Captcha  string            `json:"captcha" binding:"required"`
	Verifier VerifierAnswerDTO `json:"verifier" binding:"required"`
}

// EditPostDTO 管理端 PATCH：带 status 走状态流转，不带 status 走编辑
type EditPostDTO struct {
	Status  string `json:"status" binding:"omitempty,oneof=ACCEPTED REJECTED DELETED"`
	Reason  string `json:"reason" binding:"omitempty,max=255"`
	Content string `json:"content" binding:"omitempty,min=1"`
	FbLink  string `json:"fbLink" binding:"omitempty,max=512"`
}

// SelfEditPostDTO 投稿者凭 hash 的自助编辑
type SelfEditPostDTO struct {
	Content string `json:"content" binding:"omitempty,min=1"`
	FbLink  string `json:"fbLink" binding:"omitempty,max=512"`
}

// ListPostDTO 列表查询参数，count 的正数约束在这里兜住，引擎不再校验
type ListPostDTO struct {
	Count  int    `form:"count,default=10" binding:"min=1,max=100"`
	Cursor string `form:"cursor"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED DELETED"`
}

// PublicPostDTO 公开视图，不含 hash
type PublicPostDTO struct {
	ID        uint64  `json:"id"`
	Number    *uint64 `json:"number"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Tag       string  `json:"tag"`
	FbLink    string  `json:"fbLink"`
	CreatedAt int64   `json:"createdAt"`
	Status    string  `json:"status"`
}

// AuthorPostDTO 投稿者视图：公开视图 + hash + 拒绝理由。
// hash 只在创建响应与按 hash 查询时出现，是投稿者唯一的自助凭据。
type AuthorPostDTO struct {
	PublicPostDTO
	Hash   string `json:"hash"`
	Reason string `json:"reason"`
}

// PostHistoryDTO 编辑前快照
type PostHistoryDTO struct {
	Content  string `json:"content"`
	EditedAt int64  `json:"editedAt"`
}

// AdminPostDTO 管理端完整视图
type AdminPostDTO struct {
	AuthorPostDTO
	History   []PostHistoryDTO `json:"history"`
	UpdatedAt int64            `json:"updatedAt"`
}

// PostPageDTO getList 的一页
type PostPageDTO struct {
	Posts   interface{} `json:"posts"`
	Cursor  string      `json:"cursor"`
	HasNext bool        `json:"hasNext"`
}

// NextNumberDTO 下一个公开编号预览
type NextNumberDTO struct {
	NewNumber uint64 `json:"newNumber"`
}
