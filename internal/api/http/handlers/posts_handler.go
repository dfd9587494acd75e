package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/service"
	apperrors "github.com/spec-kit/content-service/pkg/util"
)

// PostsHandler exposes post CRUD endpoints. All routes sit behind the auth
// middleware; the author is the verified token subject, never a body field.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// Create handles POST /posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required")
	}

	post, err := h.posts.Create(c.UserContext(), subjectID, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    dto.NewPostView(post),
	})
}

// List handles GET /posts, returning the caller's posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	posts, err := h.posts.ListByAuthor(c.UserContext(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   dto.NewPostViews(posts),
	})
}

// Get handles GET /posts/:postId.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	post, err := h.posts.Get(c.UserContext(), subjectID, c.Params("postId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post fetched successfully",
		"post":    dto.NewPostView(post),
	})
}

// Update handles PUT /posts/:postId.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required")
	}

	post, err := h.posts.Update(c.UserContext(), subjectID, c.Params("postId"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    dto.NewPostView(post),
	})
}

// Delete handles DELETE /posts/:postId.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	subjectID, ok := auth.SubjectFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	if err := h.posts.Delete(c.UserContext(), subjectID, c.Params("postId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
