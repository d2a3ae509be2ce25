package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dialkey/identity-service/internal/core/domain"
	"github.com/dialkey/identity-service/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertEvent persists an auth event to the auth_events audit collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"phone":       event.Phone,
		"type":        string(event.Type),
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(auditCollection).InsertOne(ctx, doc)
	return err
}
