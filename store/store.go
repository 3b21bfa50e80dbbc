// Package store defines the persistence contracts for the catalog and the
// MongoDB implementations behind them. Callers depend on the interfaces only.
package store

import (
	"context"
	"errors"

	"moviehub/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrMovieNotFound is returned when a movie ID does not resolve to a record.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// MovieFilter is the store-level filter for movie lookups. Title is the only
// field pushed down to the store; empty means match everything. The substring
// match is case-insensitive.
type MovieFilter struct {
	Title string
}

// MovieStore is the persistence contract the catalog depends on.
type MovieStore interface {
	Find(ctx context.Context, filter MovieFilter) ([]models.Movie, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error)
	// PushComment appends a comment to the movie's embedded list in a single
	// store-level update and returns the updated movie. The comment ID is
	// assigned here, not by the caller.
	PushComment(ctx context.Context, id bson.ObjectID, comment models.Comment) (*models.Movie, error)
	// Save replaces the whole document.
	Save(ctx context.Context, movie *models.Movie) error
	InsertMany(ctx context.Context, movies []models.Movie) ([]models.Movie, error)
}

// UserStore is the persistence contract for accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetVerified(ctx context.Context, id bson.ObjectID) error
}
