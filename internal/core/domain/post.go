package domain

import "time"

// PostType classifies a community post.
type PostType string

const (
	PostAnnouncement PostType = "announcement"
	PostDiscussion   PostType = "discussion"
	PostPoll         PostType = "poll"
	PostAlert        PostType = "alert"
)

// ValidPostType reports whether t is a known post type.
func ValidPostType(t PostType) bool {
	switch t {
	case PostAnnouncement, PostDiscussion, PostPoll, PostAlert:
		return true
	}
	return false
}

// Post is a community feed entry. Pinned posts sort before unpinned ones;
// within each group newest first.
type Post struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	PostType  PostType  `json:"post_type" bson:"post_type"`
	IsPinned  bool      `json:"is_pinned" bson:"is_pinned"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
