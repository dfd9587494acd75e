package dto

import (
	"time"

	"github.com/spec-kit/content-service/internal/domain"
)

// PostCreateRequest payload for new posts. The author is always the
// authenticated caller, never a field of the request.
type PostCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostUpdateRequest payload for PUT /posts/:postId.
type PostUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostView is the response projection of a post.
type PostView struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostView projects a domain post.
func NewPostView(post *domain.Post) PostView {
	return PostView{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewPostViews projects a slice of posts.
func NewPostViews(posts []domain.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i]))
	}
	return views
}
