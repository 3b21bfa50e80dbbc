// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Movie represents a catalog entry with its embedded comment thread.
type Movie struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Image            string        `bson:"image" json:"image"`
	Genres           []string      `bson:"genres" json:"genres"`
	OriginalLanguage string        `bson:"original_language" json:"original_language"`
	Overview         string        `bson:"overview" json:"overview"`
	Popularity       float64       `bson:"popularity" json:"popularity"`
	ReleaseDate      time.Time     `bson:"release_date" json:"release_date"`
	Title            string        `bson:"title" json:"title"`
	VoteAverage      float64       `bson:"vote_average" json:"vote_average"`
	VoteCount        int           `bson:"vote_count" json:"vote_count"`
	Homepage         string        `bson:"homepage" json:"homepage"`
	Revenue          float64       `bson:"revenue" json:"revenue"`
	Runtime          int           `bson:"runtime" json:"runtime"`
	Status           string        `bson:"status" json:"status"`
	Tagline          string        `bson:"tagline" json:"tagline"`
	Budget           float64       `bson:"budget" json:"budget"`
	Comments         []Comment     `bson:"comments" json:"comments"`
}

// Comment is embedded in a Movie. User is a weak reference to the author;
// Name is a denormalized display name and is not kept in sync with the User.
type Comment struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Comment string        `bson:"comment" json:"comment"`
	User    bson.ObjectID `bson:"user" json:"user"`
	Name    string        `bson:"name" json:"name"`
}
