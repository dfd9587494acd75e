package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/content-service/internal/cache"
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util"
)

// PostService coordinates post workflows. Every operation is scoped to the
// authenticated author id resolved by the access-control middleware; a post
// owned by someone else is indistinguishable from one that does not exist.
type PostService struct {
	posts      repository.PostRepository
	listings   *cache.PostListCache
	dispatcher events.Dispatcher
}

// PostDependencies bundles collaborators for post service.
type PostDependencies struct {
	PostRepo   repository.PostRepository
	Listings   *cache.PostListCache
	Dispatcher events.Dispatcher
}

// NewPostService constructs the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		posts:      deps.PostRepo,
		listings:   deps.Listings,
		dispatcher: deps.Dispatcher,
	}
}

// Create stores a new post authored by the caller.
func (s *PostService) Create(ctx context.Context, authorID, title, content string) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.listings.Invalidate(ctx, authorID)
	s.publish(ctx, events.EventPostCreated, authorID, events.PostCreatedPayload{PostID: post.ID, Title: post.Title})
	return post, nil
}

// ListByAuthor returns the caller's posts, served from cache when warm.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	if posts, ok := s.listings.Get(ctx, authorID); ok {
		return posts, nil
	}

	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.listings.Set(ctx, authorID, posts)
	return posts, nil
}

// Get fetches one of the caller's posts.
func (s *PostService) Get(ctx context.Context, authorID, postID string) (*domain.Post, error) {
	return s.getOwned(ctx, authorID, postID)
}

// Update replaces title and content of one of the caller's posts.
func (s *PostService) Update(ctx context.Context, authorID, postID, title, content string) (*domain.Post, error) {
	post, err := s.getOwned(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post")
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.listings.Invalidate(ctx, authorID)
	return post, nil
}

// Delete removes one of the caller's posts.
func (s *PostService) Delete(ctx context.Context, authorID, postID string) error {
	post, err := s.getOwned(ctx, authorID, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post")
		}
		return apperrors.NewInternalError(err)
	}

	s.listings.Invalidate(ctx, authorID)
	s.publish(ctx, events.EventPostDeleted, authorID, events.PostDeletedPayload{PostID: post.ID})
	return nil
}

func (s *PostService) getOwned(ctx context.Context, authorID, postID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if post.AuthorID != authorID {
		return nil, apperrors.NewNotFound("Post")
	}
	return post, nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
