package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

const collectionVisitors = "visitors"

type VisitorRepository struct {
	col *mongo.Collection
}

func NewVisitorRepository(db *mongo.Database) *VisitorRepository {
	return &VisitorRepository{col: db.Collection(collectionVisitors)}
}

// Create inserts a new visitor entry.
func (r *VisitorRepository) Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *v
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert visitor: %w", err)
	}
	return &created, nil
}

func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Visitor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return &v, nil
}

// List returns visitors matching filter, most recent check-in first.
func (r *VisitorRepository) List(ctx context.Context, filter ports.VisitorFilter) ([]*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ResidentID != "" {
		query["resident_id"] = filter.ResidentID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "check_in_time", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	var visitors []*domain.Visitor
	if err := cur.All(ctx, &visitors); err != nil {
		return nil, fmt.Errorf("decode visitors: %w", err)
	}
	return visitors, nil
}

// UpdateStatus sets the status and, when checkOut is non-nil, check_out_time
// in the same write.
func (r *VisitorRepository) UpdateStatus(ctx context.Context, id string, status domain.VisitorStatus, checkOut *time.Time) (*domain.Visitor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status}
	if checkOut != nil {
		set["check_out_time"] = *checkOut
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var v domain.Visitor
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitorNotFound
		}
		return nil, fmt.Errorf("update visitor status: %w", err)
	}
	return &v, nil
}

func (r *VisitorRepository) CountPending(ctx context.Context, residentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"status":      domain.VisitorPending,
		"resident_id": residentID,
	})
	if err != nil {
		return 0, fmt.Errorf("count pending visitors: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the visitors collection.
func (r *VisitorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "resident_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "check_in_time", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
