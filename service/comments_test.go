package service

import (
	"context"
	"testing"

	"moviehub/models"
	"moviehub/store"
	"moviehub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAddComment(t *testing.T) {
	stub := testutil.NewMovieStoreStub(
		models.Movie{Title: "The Matrix", Genres: []string{"Action"}},
	)
	svc := NewCommentService(stub)

	author := bson.NewObjectID()
	updated, err := svc.Add(context.Background(), stub.Movies[0].ID, "Great film", author, "Alice")
	require.NoError(t, err)

	require.Len(t, updated.Comments, 1)
	got := updated.Comments[0]
	assert.Equal(t, "Great film", got.Comment)
	assert.Equal(t, author, got.User)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, got.ID.IsZero(), "the store assigns the comment ID")
}

func TestAddCommentUnknownMovie(t *testing.T) {
	svc := NewCommentService(testutil.NewMovieStoreStub())

	_, err := svc.Add(context.Background(), bson.NewObjectID(), "hello", bson.NewObjectID(), "Alice")
	assert.ErrorIs(t, err, store.ErrMovieNotFound)
}

func TestRemoveComment(t *testing.T) {
	owner := bson.NewObjectID()
	commentID := bson.NewObjectID()
	stub := testutil.NewMovieStoreStub(
		models.Movie{
			Title:  "The Matrix",
			Genres: []string{"Action"},
			Comments: []models.Comment{
				{ID: commentID, Comment: "Great film", User: owner, Name: "Alice"},
				{ID: bson.NewObjectID(), Comment: "Meh", User: bson.NewObjectID(), Name: "Bob"},
			},
		},
	)
	svc := NewCommentService(stub)
	movieID := stub.Movies[0].ID

	updated, err := svc.Remove(context.Background(), movieID, owner, commentID)
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "Meh", updated.Comments[0].Comment)
	assert.Equal(t, 1, stub.SaveCalls)

	// Removing the same comment again is a no-op on the already-updated movie.
	again, err := svc.Remove(context.Background(), movieID, owner, commentID)
	require.NoError(t, err)
	assert.Len(t, again.Comments, 1)
	assert.Equal(t, 1, stub.SaveCalls, "no second persist for a vanished comment")
}

func TestRemoveCommentOwnershipMismatch(t *testing.T) {
	owner := bson.NewObjectID()
	intruder := bson.NewObjectID()
	commentID := bson.NewObjectID()
	stub := testutil.NewMovieStoreStub(
		models.Movie{
			Title:  "The Matrix",
			Genres: []string{"Action"},
			Comments: []models.Comment{
				{ID: commentID, Comment: "Great film", User: owner, Name: "Alice"},
			},
		},
	)
	svc := NewCommentService(stub)

	// Someone else's comment: silently accepted, nothing removed, nothing written.
	updated, err := svc.Remove(context.Background(), stub.Movies[0].ID, intruder, commentID)
	require.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, 0, stub.SaveCalls)

	// Unknown comment ID behaves the same way.
	updated, err = svc.Remove(context.Background(), stub.Movies[0].ID, owner, bson.NewObjectID())
	require.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, 0, stub.SaveCalls)
}

func TestRemoveCommentUnknownMovie(t *testing.T) {
	svc := NewCommentService(testutil.NewMovieStoreStub())

	_, err := svc.Remove(context.Background(), bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID())
	assert.ErrorIs(t, err, store.ErrMovieNotFound)
}
