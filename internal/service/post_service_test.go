package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(repo *fakePostRepo) *PostService {
	// nil cache client yields a no-op cache; tests exercise the DB path.
	return NewPostService(PostDependencies{PostRepo: repo})
}

func TestPostService_CreateAndGet(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo)

	post, err := svc.Create(context.Background(), "user-1", "hello", "first post")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "user-1", post.AuthorID)

	fetched, err := svc.Get(context.Background(), "user-1", post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", fetched.Title)
}

func TestPostService_OwnershipFromSubject(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo)

	post, err := svc.Create(context.Background(), "user-1", "hello", "first post")
	require.NoError(t, err)

	// Another subject cannot read, update, or delete the post; the response
	// is the same as for a nonexistent post.
	_, err = svc.Get(context.Background(), "user-2", post.ID)
	domainErr := asDomainError(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	_, err = svc.Update(context.Background(), "user-2", post.ID, "hijacked", "")
	domainErr = asDomainError(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	err = svc.Delete(context.Background(), "user-2", post.ID)
	domainErr = asDomainError(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	still, err := svc.Get(context.Background(), "user-1", post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", still.Title)
}

func TestPostService_ListByAuthor(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo)

	_, err := svc.Create(context.Background(), "user-1", "one", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-1", "two", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", "other", "")
	require.NoError(t, err)

	posts, err := svc.ListByAuthor(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	for _, post := range posts {
		assert.Equal(t, "user-1", post.AuthorID)
	}
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo)

	post, err := svc.Create(context.Background(), "user-1", "hello", "body")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "user-1", post.ID, "hello v2", "body v2")
	require.NoError(t, err)
	assert.Equal(t, "hello v2", updated.Title)

	require.NoError(t, svc.Delete(context.Background(), "user-1", post.ID))

	_, err = svc.Get(context.Background(), "user-1", post.ID)
	domainErr := asDomainError(t, err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
