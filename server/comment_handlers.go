package server

import (
	"errors"

	"moviehub/cache"
	"moviehub/models"
	"moviehub/store"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CreateComment handles POST /api/comments/:id (API-key protected). The
// acting user comes from the middleware; the display name travels in the
// body and is stored denormalized on the comment.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	movieID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid movie ID"))
	}

	var req struct {
		Comment string `json:"comment"`
		Name    string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Comment == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment text is required"))
	}
	name := req.Name
	if name == "" {
		name = user.Name
	}

	movie, err := s.comments.Add(c.UserContext(), movieID, req.Comment, user.ID, name)
	if errors.Is(err, store.ErrMovieNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Movie", c.Params("id")))
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	cache.InvalidatePrefix(c.UserContext(), listCachePrefix)

	return c.JSON(fiber.Map{
		"message": "Comment created",
		"update":  movie,
	})
}

// DeleteComment handles DELETE /api/comments/:id (API-key protected). A
// comment is only removed when it exists and belongs to the acting user;
// otherwise the movie comes back unchanged.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	movieID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid movie ID"))
	}

	var req struct {
		CommentID string `json:"commentID"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	commentID, err := bson.ObjectIDFromHex(req.CommentID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	movie, err := s.comments.Remove(c.UserContext(), movieID, user.ID, commentID)
	if errors.Is(err, store.ErrMovieNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Movie", c.Params("id")))
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	cache.InvalidatePrefix(c.UserContext(), listCachePrefix)

	return c.JSON(fiber.Map{
		"message": "Comment deleted",
		"movie":   movie,
	})
}
