// Package testutil provides in-memory store doubles shared by the tests.
package testutil

import (
	"context"
	"strings"

	"moviehub/models"
	"moviehub/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MovieStoreStub is an in-memory MovieStore. Insertion order is preserved,
// which the listing tests rely on. SaveCalls counts whole-document writes so
// tests can assert that a no-op remove never persisted.
type MovieStoreStub struct {
	Movies    []models.Movie
	SaveCalls int
	FindErr   error
}

// NewMovieStoreStub creates a stub pre-populated with the given movies,
// assigning IDs to any that lack one.
func NewMovieStoreStub(movies ...models.Movie) *MovieStoreStub {
	s := &MovieStoreStub{}
	for _, m := range movies {
		if m.ID.IsZero() {
			m.ID = bson.NewObjectID()
		}
		s.Movies = append(s.Movies, m)
	}
	return s
}

func (s *MovieStoreStub) Find(_ context.Context, filter store.MovieFilter) ([]models.Movie, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}

	want := strings.ToLower(filter.Title)
	out := []models.Movie{}
	for _, m := range s.Movies {
		if want == "" || strings.Contains(strings.ToLower(m.Title), want) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MovieStoreStub) FindByID(_ context.Context, id bson.ObjectID) (*models.Movie, error) {
	for _, m := range s.Movies {
		if m.ID == id {
			found := m
			found.Comments = append([]models.Comment{}, m.Comments...)
			return &found, nil
		}
	}
	return nil, store.ErrMovieNotFound
}

func (s *MovieStoreStub) PushComment(_ context.Context, id bson.ObjectID, comment models.Comment) (*models.Movie, error) {
	for i := range s.Movies {
		if s.Movies[i].ID == id {
			if comment.ID.IsZero() {
				comment.ID = bson.NewObjectID()
			}
			s.Movies[i].Comments = append(s.Movies[i].Comments, comment)
			updated := s.Movies[i]
			return &updated, nil
		}
	}
	return nil, store.ErrMovieNotFound
}

func (s *MovieStoreStub) Save(_ context.Context, movie *models.Movie) error {
	s.SaveCalls++
	for i := range s.Movies {
		if s.Movies[i].ID == movie.ID {
			s.Movies[i] = *movie
			return nil
		}
	}
	return store.ErrMovieNotFound
}

func (s *MovieStoreStub) InsertMany(_ context.Context, movies []models.Movie) ([]models.Movie, error) {
	for i := range movies {
		if movies[i].ID.IsZero() {
			movies[i].ID = bson.NewObjectID()
		}
		if movies[i].Comments == nil {
			movies[i].Comments = []models.Comment{}
		}
		s.Movies = append(s.Movies, movies[i])
	}
	return movies, nil
}

// UserStoreStub is an in-memory UserStore.
type UserStoreStub struct {
	Users []*models.User
}

func (s *UserStoreStub) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *UserStoreStub) FindByAPIKey(_ context.Context, apiKey string) (*models.User, error) {
	for _, u := range s.Users {
		if u.APIKey == apiKey {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *UserStoreStub) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.Users = append(s.Users, user)
	return nil
}

func (s *UserStoreStub) SetVerified(_ context.Context, id bson.ObjectID) error {
	for _, u := range s.Users {
		if u.ID == id {
			u.Status = true
			return nil
		}
	}
	return store.ErrUserNotFound
}
