package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string        `bson:"username" json:"username"`
	Email    string        `bson:"email" json:"email"`
	Password string        `bson:"password" json:"-"` // bcrypt digest, never exposed
	Name     string        `bson:"name" json:"name"`
	Avatar   string        `bson:"avatar" json:"avatar"`
	Monies   int           `bson:"monies" json:"monies"`
	Created  time.Time     `bson:"created" json:"created"`
	Updated  time.Time     `bson:"updated" json:"updated"`
}

// AdminUser is a separate principal class, not a User with a flag. The
// credential verifier only consults this collection when no regular user
// matches the supplied username.
type AdminUser struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string        `bson:"username" json:"username"`
	Password string        `bson:"password" json:"-"`
	Created  time.Time     `bson:"created" json:"created"`
}
