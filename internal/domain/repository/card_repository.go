package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Card, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Card, error)
	ListByUserSince(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Card, error)
	ListByModel(ctx context.Context, modelID bson.ObjectID) ([]model.Card, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoCardRepository struct {
	coll *mongo.Collection
}

func NewMongoCardRepository(db *mongo.Database) CardRepository {
	return &mongoCardRepository{coll: db.Collection("cards")}
}

func (r *mongoCardRepository) Create(ctx context.Context, card *model.Card) error {
	card.Created = time.Now()
	card.Updated = card.Created
	res, err := r.coll.InsertOne(ctx, card)
	if err != nil {
		return fmt.Errorf("mongoCardRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		card.ID = id
	}
	return nil
}

func (r *mongoCardRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Card, error) {
	card := &model.Card{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoCardRepository.FindByID: %w", err)
	}
	return card, nil
}

func (r *mongoCardRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Card, error) {
	return r.findAll(ctx, bson.M{"userId": userID}, "ListByUser")
}

func (r *mongoCardRepository) ListByUserSince(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Card, error) {
	return r.findAll(ctx, bson.M{"userId": userID, "updated": bson.M{"$gte": since}}, "ListByUserSince")
}

func (r *mongoCardRepository) ListByModel(ctx context.Context, modelID bson.ObjectID) ([]model.Card, error) {
	return r.findAll(ctx, bson.M{"modelId": modelID}, "ListByModel")
}

func (r *mongoCardRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.Card, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoCardRepository.%s: %w", op, err)
	}
	cards := []model.Card{}
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("mongoCardRepository.%s: %w", op, err)
	}
	return cards, nil
}

func (r *mongoCardRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoCardRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
