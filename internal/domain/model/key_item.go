package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// KeyItem is created by a server operator (the creating user acts as a
// namespace for items of the same name) and granted to player accounts
// listed in Owners.
type KeyItem struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID      bson.ObjectID   `bson:"userId" json:"userId"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Owners      []bson.ObjectID `bson:"owners" json:"owners"`
	Servers     []string        `bson:"servers" json:"servers"`
	Created     time.Time       `bson:"created" json:"created"`
	Updated     time.Time       `bson:"updated" json:"updated"`
}

// KeyItemSummary is the projection shown to owners and third parties, which
// hides the creator and the owner list.
type KeyItemSummary struct {
	ItemID      bson.ObjectID `json:"itemId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

func (k *KeyItem) Summary() KeyItemSummary {
	return KeyItemSummary{
		ItemID:      k.ID,
		Name:        k.Name,
		Description: k.Description,
	}
}
