package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CardModel holds the catalog data every card instance points back to.
type CardModel struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string        `bson:"name" json:"name"`
	Damage             int           `bson:"damage" json:"damage"`
	Element            string        `bson:"element" json:"element"`
	SecondaryElement   string        `bson:"secondaryElement" json:"secondaryElement"`
	Description        string        `bson:"description" json:"description"`
	VerboseDescription string        `bson:"verboseDescription" json:"verboseDescription"`
	Image              string        `bson:"image" json:"image"` // URL location
	Icon               string        `bson:"icon" json:"icon"`   // URL location
	Codes              []string      `bson:"codes" json:"codes"`
	Created            time.Time     `bson:"created" json:"created"`
	Updated            time.Time     `bson:"updated" json:"updated"`
}

// Card is a lightweight instance owned by a user, carrying one of the codes
// its model allows.
type Card struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID  bson.ObjectID `bson:"userId" json:"userId"`
	ModelID bson.ObjectID `bson:"modelId" json:"modelId"`
	Code    string        `bson:"code" json:"code"`
	Created time.Time     `bson:"created" json:"created"`
	Updated time.Time     `bson:"updated" json:"updated"`
}

// CardCombo names a sequence of card models that trigger a combo effect.
type CardCombo struct {
	ID               bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name             string          `bson:"name" json:"name"`
	Damage           int             `bson:"damage" json:"damage"`
	Element          string          `bson:"element" json:"element"`
	SecondaryElement string          `bson:"secondaryElement" json:"secondaryElement"`
	Cards            []bson.ObjectID `bson:"cards" json:"cards"` // card model IDs, in order
	Created          time.Time       `bson:"created" json:"created"`
	Updated          time.Time       `bson:"updated" json:"updated"`
}
