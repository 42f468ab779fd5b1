package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/societyhub/community-api/internal/infrastructure/db/mongo"
)

// ensureIndexes creates the indexes every repository relies on. Run at
// startup; index builds are idempotent.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}

	repos := []indexed{
		mongodb.NewProfileRepository(db),
		mongodb.NewPostRepository(db),
		mongodb.NewVisitorRepository(db),
		mongodb.NewPaymentRepository(db),
		mongodb.NewIssueRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
