package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetToken stores the bcrypt digest of an outstanding password-reset
// token. At most one lives per user: a new request supersedes the old
// record, and a successful verify deletes it.
type ResetToken struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID  bson.ObjectID `bson:"userId" json:"userId"`
	Token   string        `bson:"token" json:"-"`
	Created time.Time     `bson:"created" json:"created"`
}
