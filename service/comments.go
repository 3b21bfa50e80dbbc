package service

import (
	"context"

	"moviehub/models"
	"moviehub/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CommentService mutates a movie's embedded comment list. Adds go through a
// single atomic store update; removes are a read-modify-write and can lose an
// update under concurrent removes on the same movie (the store is only the
// serialization point for adds).
type CommentService struct {
	movies store.MovieStore
}

// NewCommentService creates a comment service over the given store.
func NewCommentService(movies store.MovieStore) *CommentService {
	return &CommentService{movies: movies}
}

// Add appends a comment to the movie and returns the updated movie. Returns
// store.ErrMovieNotFound when the id does not resolve.
func (s *CommentService) Add(ctx context.Context, movieID bson.ObjectID, text string, authorID bson.ObjectID, authorName string) (*models.Movie, error) {
	comment := models.Comment{
		Comment: text,
		User:    authorID,
		Name:    authorName,
	}
	return s.movies.PushComment(ctx, movieID, comment)
}

// Remove deletes the comment only if both the comment id and the author id
// match an entry. When nothing matches (unknown id, or someone else's
// comment) the movie is returned untouched and nothing is written; callers
// that need to distinguish the cases compare comment counts.
func (s *CommentService) Remove(ctx context.Context, movieID, authorID, commentID bson.ObjectID) (*models.Movie, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	owned := false
	for _, c := range movie.Comments {
		if c.ID == commentID && c.User == authorID {
			owned = true
			break
		}
	}
	if !owned {
		return movie, nil
	}

	kept := make([]models.Comment, 0, len(movie.Comments)-1)
	for _, c := range movie.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	movie.Comments = kept

	if err := s.movies.Save(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}
