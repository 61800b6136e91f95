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

type CardModelRepository interface {
	Create(ctx context.Context, cm *model.CardModel) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.CardModel, error)
	ListSince(ctx context.Context, since time.Time) ([]model.CardModel, error)
	Update(ctx context.Context, cm *model.CardModel) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoCardModelRepository struct {
	coll *mongo.Collection
}

func NewMongoCardModelRepository(db *mongo.Database) CardModelRepository {
	return &mongoCardModelRepository{coll: db.Collection("cardmodels")}
}

func (r *mongoCardModelRepository) Create(ctx context.Context, cm *model.CardModel) error {
	cm.Created = time.Now()
	cm.Updated = cm.Created
	res, err := r.coll.InsertOne(ctx, cm)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("card model with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoCardModelRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		cm.ID = id
	}
	return nil
}

func (r *mongoCardModelRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.CardModel, error) {
	cm := &model.CardModel{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(cm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoCardModelRepository.FindByID: %w", err)
	}
	return cm, nil
}

func (r *mongoCardModelRepository) ListSince(ctx context.Context, since time.Time) ([]model.CardModel, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"updated": bson.M{"$gte": since}})
	if err != nil {
		return nil, fmt.Errorf("mongoCardModelRepository.ListSince: %w", err)
	}
	models := []model.CardModel{}
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongoCardModelRepository.ListSince: %w", err)
	}
	return models, nil
}

func (r *mongoCardModelRepository) Update(ctx context.Context, cm *model.CardModel) error {
	cm.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": cm.ID}, cm)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("card model with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoCardModelRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoCardModelRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoCardModelRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
