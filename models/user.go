package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. It is owned by the auth subsystem;
// the catalog only ever consumes a resolved user identity.
type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Email    string        `bson:"email" json:"email"`
	Password string        `bson:"password" json:"-"`
	Status   bool          `bson:"status" json:"status"`
	APIKey   string        `bson:"apiKey" json:"-"`
	Role     string        `bson:"rol" json:"rol"`
}
