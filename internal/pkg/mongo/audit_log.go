package mongo

import "time"

// 审核流水动作
const (
	AuditActionCreate     = "CREATE"
	AuditActionEdit       = "EDIT"
	AuditActionAccept     = "ACCEPT"
	AuditActionReject     = "REJECT"
	AuditActionSoftDelete = "SOFT_DELETE"
	AuditActionHardDelete = "HARD_DELETE"
)

// AuditLog 一条投稿生命周期流水，append-only
type AuditLog struct {
	PostID    uint64    `bson:"post_id"`
	Action    string    `bson:"action"`
	Operator  string    `bson:"operator"` // admin / author
	Detail    string    `bson:"detail,omitempty"`
	TraceID   string    `bson:"trace_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}
