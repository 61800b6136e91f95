package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Folder is a user's deck: an ordered list of card IDs fed to the battle
// engine.
type Folder struct {
	ID      bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID  bson.ObjectID   `bson:"userId" json:"userId"`
	Name    string          `bson:"name" json:"name"`
	Cards   []bson.ObjectID `bson:"cards" json:"cards"`
	Created time.Time       `bson:"created" json:"created"`
	Updated time.Time       `bson:"updated" json:"updated"`
}

// PublicFolder is a folder shared with everyone, addressable by a slug
// derived from its name.
type PublicFolder struct {
	ID      bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID  bson.ObjectID   `bson:"userId" json:"userId"`
	Name    string          `bson:"name" json:"name"`
	Slug    string          `bson:"slug" json:"slug"`
	Cards   []bson.ObjectID `bson:"cards" json:"cards"`
	Created time.Time       `bson:"created" json:"created"`
	Updated time.Time       `bson:"updated" json:"updated"`
}
