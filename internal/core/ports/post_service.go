package ports

import (
	"context"
	"time"

	"github.com/societyhub/community-api/internal/core/domain"
)

// CreatePostInput carries the data for a new community post.
type CreatePostInput struct {
	Title    string
	Content  string
	PostType domain.PostType
}

// PostItem is a post with its author's display info attached.
type PostItem struct {
	Post   domain.Post
	Author *ProfileRef
}

// PostService defines use-case operations for the community feed.
type PostService interface {
	Create(ctx context.Context, actor domain.Actor, input CreatePostInput) (*domain.Post, error)
	// List returns the feed: pinned posts first, then newest first.
	List(ctx context.Context) ([]PostItem, error)
	// SetPinned toggles the pin flag. Admin only.
	SetPinned(ctx context.Context, actor domain.Actor, postID string, pinned bool) (*domain.Post, error)
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns all posts ordered is_pinned desc, created_at desc.
	List(ctx context.Context) ([]*domain.Post, error)
	SetPinned(ctx context.Context, id string, pinned bool, updatedAt time.Time) (*domain.Post, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
