package repository

import (
	"context"
	"fmt"
	"time"

	"netbattle_api/internal/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type TxRepository interface {
	Create(ctx context.Context, tx *model.Tx) error
	// ListSinceForUser returns transactions the user took part in on either
	// side of the trade.
	ListSinceForUser(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Tx, error)
}

type mongoTxRepository struct {
	coll *mongo.Collection
}

func NewMongoTxRepository(db *mongo.Database) TxRepository {
	return &mongoTxRepository{coll: db.Collection("txs")}
}

func (r *mongoTxRepository) Create(ctx context.Context, tx *model.Tx) error {
	tx.Created = time.Now()
	res, err := r.coll.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("mongoTxRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		tx.ID = id
	}
	return nil
}

func (r *mongoTxRepository) ListSinceForUser(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Tx, error) {
	filter := bson.M{
		"created": bson.M{"$gte": since},
		"$or":     []bson.M{{"from": userID}, {"to": userID}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoTxRepository.ListSinceForUser: %w", err)
	}
	txs := []model.Tx{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("mongoTxRepository.ListSinceForUser: %w", err)
	}
	return txs, nil
}
