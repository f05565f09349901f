package persistence

import (
	"context"

	"hireboard/domain/model"
	"hireboard/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DispatchAuditRepository appends dispatch outcomes to MongoDB. The audit
// trail is best-effort: a nil client turns the repository into a no-op.
type DispatchAuditRepository struct {
	client *mongo.Client
}

func NewDispatchAuditRepository(client *mongo.Client) *DispatchAuditRepository {
	return &DispatchAuditRepository{client: client}
}

func (r *DispatchAuditRepository) Record(ctx context.Context, entries []*model.DispatchAudit) error {
	if len(entries) == 0 {
		return nil
	}
	if r.client == nil {
		logger.GetLogger().Debug("MongoDB client is nil - skipping dispatch audit")
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}
	collection := r.client.Database("hireboard").Collection("social_dispatch_audit")
	_, err := collection.InsertMany(ctx, docs)
	return err
}
