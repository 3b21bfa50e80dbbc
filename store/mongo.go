package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moviehub/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect opens a MongoDB client and verifies the connection.
func Connect(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

type mongoMovieStore struct {
	col *mongo.Collection
}

// NewMovieStore creates a MongoDB-backed movie store on the given database.
func NewMovieStore(db *mongo.Database) MovieStore {
	return &mongoMovieStore{col: db.Collection("movies")}
}

// Find lists movies matching the filter. The title is matched as a
// case-insensitive $regex pattern, not a quoted literal, so metacharacters
// in the query are interpreted by the server.
func (s *mongoMovieStore) Find(ctx context.Context, filter MovieFilter) ([]models.Movie, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = bson.M{"$regex": filter.Title, "$options": "i"}
	}

	cursor, err := s.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return movies, nil
}

func (s *mongoMovieStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error) {
	var movie models.Movie
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find movie %s: %w", id.Hex(), err)
	}
	return &movie, nil
}

func (s *mongoMovieStore) PushComment(ctx context.Context, id bson.ObjectID, comment models.Comment) (*models.Movie, error) {
	// Subdocument IDs are not auto-assigned by the driver, so assign here.
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}

	update := bson.M{"$push": bson.M{"comments": comment}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var movie models.Movie
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("push comment on movie %s: %w", id.Hex(), err)
	}
	return &movie, nil
}

func (s *mongoMovieStore) Save(ctx context.Context, movie *models.Movie) error {
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": movie.ID}, movie)
	if err != nil {
		return fmt.Errorf("save movie %s: %w", movie.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (s *mongoMovieStore) InsertMany(ctx context.Context, movies []models.Movie) ([]models.Movie, error) {
	for i := range movies {
		if movies[i].ID.IsZero() {
			movies[i].ID = bson.NewObjectID()
		}
		if movies[i].Comments == nil {
			movies[i].Comments = []models.Comment{}
		}
	}

	if _, err := s.col.InsertMany(ctx, movies); err != nil {
		return nil, fmt.Errorf("insert movies: %w", err)
	}
	return movies, nil
}

type mongoUserStore struct {
	col *mongo.Collection
}

// NewUserStore creates a MongoDB-backed user store on the given database.
func NewUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{col: db.Collection("users")}
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoUserStore) FindByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"apiKey": apiKey})
}

func (s *mongoUserStore) findOne(ctx context.Context, query bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, query).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *mongoUserStore) SetVerified(ctx context.Context, id bson.ObjectID) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": true}})
	if err != nil {
		return fmt.Errorf("verify user %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
