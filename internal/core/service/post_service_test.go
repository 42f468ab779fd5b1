package service

import (
	"context"
	"errors"
	"testing"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

func TestPostService_Create_DefaultType(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), newStubProfileRepo(), testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreatePostInput{
		Title:   "Diwali plans",
		Content: "Who is organising the society event this year?",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.PostType != domain.PostDiscussion {
		t.Fatalf("post type should default to discussion, got %s", created.PostType)
	}
	if created.IsPinned {
		t.Fatalf("new posts must not be pinned")
	}
	if created.AuthorID != "res_1" {
		t.Fatalf("author_id = %s", created.AuthorID)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), newStubProfileRepo(), testLogger())
	actor := domain.Actor{ID: "res_1", Role: domain.RoleResident}

	if _, err := svc.Create(context.Background(), actor, ports.CreatePostInput{Content: "no title"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, ports.CreatePostInput{Title: "x", Content: "y", PostType: "meme"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown type, got %v", err)
	}
}

func TestPostService_List_AttachesAuthors(t *testing.T) {
	posts := newStubPostRepo()
	profiles := newStubProfileRepo()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewPostService(posts, profiles, testLogger())

	if _, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreatePostInput{
		Title:    "Water outage",
		Content:  "Tanker arriving at noon",
		PostType: domain.PostAnnouncement,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Author deleted after posting: the feed still renders, ref stays nil.
	if _, err := svc.Create(context.Background(), domain.Actor{ID: "res_gone", Role: domain.RoleResident}, ports.CreatePostInput{
		Title:   "Old notice",
		Content: "From a removed profile",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(items))
	}
	for _, item := range items {
		switch item.Post.AuthorID {
		case "res_1":
			if item.Author == nil || item.Author.FlatNumber != "A-101" {
				t.Fatalf("author ref not attached: %+v", item.Author)
			}
		case "res_gone":
			if item.Author != nil {
				t.Fatalf("missing profile should yield nil ref")
			}
		}
	}
}

func TestPostService_SetPinned(t *testing.T) {
	posts := newStubPostRepo()
	svc := NewPostService(posts, newStubProfileRepo(), testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "adm_1", Role: domain.RoleAdmin}, ports.CreatePostInput{
		Title:    "Fire drill",
		Content:  "Drill on Saturday 10am",
		PostType: domain.PostAlert,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetPinned(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, created.ID, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	pinned, err := svc.SetPinned(context.Background(), domain.Actor{ID: "adm_1", Role: domain.RoleAdmin}, created.ID, true)
	if err != nil {
		t.Fatalf("SetPinned returned error: %v", err)
	}
	if !pinned.IsPinned {
		t.Fatalf("pin flag not set")
	}

	if _, err := svc.SetPinned(context.Background(), domain.Actor{ID: "adm_1", Role: domain.RoleAdmin}, "missing", true); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
