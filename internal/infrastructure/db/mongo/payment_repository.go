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
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// Create inserts a single payment due.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *p
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &created, nil
}

// CreateBatch inserts all payments inside a single transaction: on any
// failure the whole batch is rolled back and no row is committed.
func (r *PaymentRepository) CreateBatch(ctx context.Context, payments []*domain.Payment) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	created := make([]*domain.Payment, 0, len(payments))
	docs := make([]interface{}, 0, len(payments))
	for _, p := range payments {
		clone := *p
		if clone.ID == "" {
			clone.ID = primitive.NewObjectID().Hex()
		}
		created = append(created, &clone)
		docs = append(docs, &clone)
	}

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.col.InsertMany(sc, docs)
	})
	if err != nil {
		return nil, fmt.Errorf("batch insert payments: %w", err)
	}
	return created, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Payment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &p, nil
}

// List returns payments due_date desc. When residentID is non-empty the
// query is scoped to that resident.
func (r *PaymentRepository) List(ctx context.Context, residentID string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if residentID != "" {
		query["resident_id"] = residentID
	}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	var payments []*domain.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

// MarkPaid sets status=paid, transaction_id and paid_at in one write.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) (*domain.Payment, error) {
	return r.update(ctx, id, bson.M{
		"status":         domain.PaymentPaid,
		"transaction_id": transactionID,
		"paid_at":        paidAt,
	})
}

// MarkVerified sets status=verified, verified_by and verified_at in one write.
func (r *PaymentRepository) MarkVerified(ctx context.Context, id, verifiedBy string, verifiedAt time.Time) (*domain.Payment, error) {
	return r.update(ctx, id, bson.M{
		"status":      domain.PaymentVerified,
		"verified_by": verifiedBy,
		"verified_at": verifiedAt,
	})
}

func (r *PaymentRepository) update(ctx context.Context, id string, set bson.M) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Payment
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) CountPending(ctx context.Context, residentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"status":      domain.PaymentPending,
		"resident_id": residentID,
	})
	if err != nil {
		return 0, fmt.Errorf("count pending payments: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the payments collection.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "resident_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
