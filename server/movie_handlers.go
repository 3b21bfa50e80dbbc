package server

import (
	"errors"
	"fmt"
	"time"

	"moviehub/cache"
	"moviehub/models"
	"moviehub/seed"
	"moviehub/service"
	"moviehub/store"
	"moviehub/validation"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	listCachePrefix = "movies:list:"
	listCacheTTL    = 30 * time.Second
)

// ListMovies handles GET /api/movies. The envelope always carries the movie
// page and its count; pagination metadata only appears when a page was
// requested. The response is cached briefly per query string.
func (s *Server) ListMovies(c *fiber.Ctx) error {
	query := service.ListQuery{
		Title: c.Query("title"),
		Genre: c.Query("genre"),
		Page:  c.Query("page"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}

	key := listCachePrefix + string(c.Request().URI().QueryString())
	var result *service.MovieList
	err := cache.CacheAside(c.UserContext(), key, &result, listCacheTTL, func() error {
		var listErr error
		result, listErr = s.catalog.List(c.UserContext(), query)
		return listErr
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(result)
}

// GetMovie handles GET /api/movies/:id
func (s *Server) GetMovie(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid movie ID"))
	}

	movie, err := s.catalog.GetByID(c.UserContext(), id)
	if errors.Is(err, store.ErrMovieNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Movie", c.Params("id")))
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(movie)
}

// CreateMovie handles POST /api/movies (protected)
func (s *Server) CreateMovie(c *fiber.Ctx) error {
	input := new(validation.MovieInput)
	if err := c.BodyParser(input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateMovieInput(input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	movie, err := s.catalog.Create(c.UserContext(), input.ToMovie())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidatePrefix(c.UserContext(), listCachePrefix)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"new_movie": movie,
	})
}

// LoadMovies handles POST /api/movies/load (protected): bulk-inserts the
// static catalog.
func (s *Server) LoadMovies(c *fiber.Ctx) error {
	movies, err := s.catalog.CreateAll(c.UserContext(), seed.Catalog(s.config.MoviesFile))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidatePrefix(c.UserContext(), listCachePrefix)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Loaded %d movies", len(movies)),
		"movies":  movies,
	})
}
