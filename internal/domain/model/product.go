package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product is a listing another player can purchase with monies. A product
// may grant a key item on purchase.
type Product struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      bson.ObjectID  `bson:"userId" json:"userId"` // seller
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	Price       int            `bson:"price" json:"price"`
	KeyItemID   *bson.ObjectID `bson:"keyItemId,omitempty" json:"keyItemId,omitempty"`
	Created     time.Time      `bson:"created" json:"created"`
	Updated     time.Time      `bson:"updated" json:"updated"`
}

// Tx records a completed purchase.
type Tx struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	From    bson.ObjectID `bson:"from" json:"from"`
	To      bson.ObjectID `bson:"to" json:"to"`
	Product bson.ObjectID `bson:"product" json:"product"`
	Created time.Time     `bson:"created" json:"created"`
}
