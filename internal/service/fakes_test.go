package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user directory. It
// mirrors the contract the services rely on: pgx.ErrNoRows on misses and
// repository.ErrDuplicateEmail on unique-constraint violations.
type fakeUserRepo struct {
	users    map[string]*domain.User
	seq      int
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	existing, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, other := range r.users {
		if id != user.ID && other.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.UpdatedAt = time.Now()
	clone := *user
	clone.CreatedAt = existing.CreatedAt
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int, emailOrder string) ([]domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	all := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool {
		if emailOrder == "asc" {
			return all[i].Email < all[j].Email
		}
		return all[i].Email > all[j].Email
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// fakePostRepo is the in-memory counterpart for the post store.
type fakePostRepo struct {
	posts    map[string]*domain.Post
	seq      int
	failWith error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	post.UpdatedAt = time.Now()
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Post, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var posts []domain.Post
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

var _ repository.PostRepository = (*fakePostRepo)(nil)
