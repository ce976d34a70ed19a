package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodsales/dashboard/internal/core/domain"
)

const auditCollection = "access_audit"

// auditRetention bounds how long refused navigations are kept.
const auditRetention = 90 * 24 * time.Hour

// AuditRepository writes refused navigations to the access_audit collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

type auditDocument struct {
	SessionID  string    `bson:"session_id,omitempty"`
	UserID     int64     `bson:"user_id,omitempty"`
	Email      string    `bson:"email,omitempty"`
	Path       string    `bson:"path"`
	Outcome    string    `bson:"outcome"`
	Target     string    `bson:"target,omitempty"`
	Reason     string    `bson:"reason"`
	OccurredAt time.Time `bson:"occurred_at"`
}

// Insert persists one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AccessAuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDocument{
		SessionID:  e.SessionID,
		UserID:     e.UserID,
		Email:      e.Email,
		Path:       e.Path,
		Outcome:    string(e.Outcome),
		Target:     e.Target,
		Reason:     e.Reason,
		OccurredAt: e.OccurredAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes and the retention TTL index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "session_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
