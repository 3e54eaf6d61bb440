package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepo interface {
	Append(ctx context.Context, entry *AuditLog) error
	GetByPost(ctx context.Context, postID uint64, limit int) ([]*AuditLog, error)
}

type auditRepoImpl struct {
	col *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) AuditRepo {
	return &auditRepoImpl{
		col: db.Collection("moderation_audit"),
	}
}

// Append 将一条流水存入 MongoDB
func (s *auditRepoImpl) Append(ctx context.Context, entry *AuditLog) error {
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// GetByPost 查询某条投稿的流水，最新的在前
func (s *auditRepoImpl) GetByPost(ctx context.Context, postID uint64, limit int) ([]*AuditLog, error) {
	filter := bson.M{"post_id": postID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
