package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/api/metrics"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// PostService implements the community feed.
type PostService struct {
	posts    ports.PostRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, profiles: profiles, logger: logger}
}

func (s *PostService) Create(ctx context.Context, actor domain.Actor, input ports.CreatePostInput) (*domain.Post, error) {
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	postType := input.PostType
	if postType == "" {
		postType = domain.PostDiscussion
	}
	if !domain.ValidPostType(postType) {
		return nil, fmt.Errorf("%w: unknown post type %q", domain.ErrValidation, input.PostType)
	}

	now := time.Now().UTC()
	post := &domain.Post{
		AuthorID:  actor.ID,
		Title:     input.Title,
		Content:   input.Content,
		PostType:  postType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(postType)).Inc()
	s.logger.Info().Str("post_id", created.ID).Str("post_type", string(postType)).Msg("post created")
	return created, nil
}

// List returns the feed with author display info attached: pinned posts
// first, then newest first.
func (s *PostService) List(ctx context.Context) ([]ports.PostItem, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	authors, err := s.resolveAuthors(ctx, posts)
	if err != nil {
		return nil, err
	}

	items := make([]ports.PostItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, ports.PostItem{Post: *p, Author: authors[p.AuthorID]})
	}
	return items, nil
}

// SetPinned toggles the pin flag on a post. Admin only.
func (s *PostService) SetPinned(ctx context.Context, actor domain.Actor, postID string, pinned bool) (*domain.Post, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	updated, err := s.posts.SetPinned(ctx, postID, pinned, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", postID).Bool("pinned", pinned).Msg("post pin toggled")
	return updated, nil
}

func (s *PostService) resolveAuthors(ctx context.Context, posts []*domain.Post) (map[string]*ports.ProfileRef, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}
	return profileRefs(ctx, s.profiles, ids)
}

// profileRefs resolves a set of profile ids into display projections.
func profileRefs(ctx context.Context, repo ports.ProfileRepository, ids []string) (map[string]*ports.ProfileRef, error) {
	if len(ids) == 0 {
		return map[string]*ports.ProfileRef{}, nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]*ports.ProfileRef, len(found))
	for id, p := range found {
		refs[id] = &ports.ProfileRef{ID: p.ID, FullName: p.FullName, FlatNumber: p.FlatNumber}
	}
	return refs, nil
}
