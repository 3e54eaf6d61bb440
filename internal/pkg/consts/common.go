package consts

const (
	RoleAdmin = "ADMIN"
)

const (
	OperatorAdmin  = "admin"
	OperatorAuthor = "author"
)

const (
	// DefaultListCount getList 默认分页大小
	DefaultListCount = 10
	// MaxListCount 分页大小上限
	MaxListCount = 100
)
