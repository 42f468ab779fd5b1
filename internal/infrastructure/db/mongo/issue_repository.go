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

const collectionIssues = "issues"

type IssueRepository struct {
	col *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{col: db.Collection(collectionIssues)}
}

// Create inserts a new issue document.
func (r *IssueRepository) Create(ctx context.Context, i *domain.Issue) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *i
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}
	return &created, nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id string) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var i domain.Issue
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return &i, nil
}

// List returns issues matching filter: SOS first by recency, then the rest
// newest first. The stored priority does not participate in the sort key.
func (r *IssueRepository) List(ctx context.Context, filter ports.IssueFilter) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "is_sos", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	var issues []*domain.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// UpdateStatus sets the status and bumps updated_at.
func (r *IssueRepository) UpdateStatus(ctx context.Context, id string, status domain.IssueStatus, updatedAt time.Time) (*domain.Issue, error) {
	return r.update(ctx, id, bson.M{"status": status, "updated_at": updatedAt})
}

// SetSOS flips the SOS flag and bumps updated_at.
func (r *IssueRepository) SetSOS(ctx context.Context, id string, sos bool, updatedAt time.Time) (*domain.Issue, error) {
	return r.update(ctx, id, bson.M{"is_sos": sos, "updated_at": updatedAt})
}

func (r *IssueRepository) update(ctx context.Context, id string, set bson.M) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var i domain.Issue
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("update issue: %w", err)
	}
	return &i, nil
}

// CountOpen counts issues that are open or in progress.
func (r *IssueRepository) CountOpen(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []domain.IssueStatus{domain.IssueOpen, domain.IssueInProgress}},
	})
	if err != nil {
		return 0, fmt.Errorf("count open issues: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the issues collection.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_sos", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
