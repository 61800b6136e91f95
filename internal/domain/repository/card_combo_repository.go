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

type CardComboRepository interface {
	Create(ctx context.Context, combo *model.CardCombo) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.CardCombo, error)
	List(ctx context.Context) ([]model.CardCombo, error)
	ListSince(ctx context.Context, since time.Time) ([]model.CardCombo, error)
	Update(ctx context.Context, combo *model.CardCombo) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoCardComboRepository struct {
	coll *mongo.Collection
}

func NewMongoCardComboRepository(db *mongo.Database) CardComboRepository {
	return &mongoCardComboRepository{coll: db.Collection("cardcombos")}
}

func (r *mongoCardComboRepository) Create(ctx context.Context, combo *model.CardCombo) error {
	combo.Created = time.Now()
	combo.Updated = combo.Created
	res, err := r.coll.InsertOne(ctx, combo)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("combo with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoCardComboRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		combo.ID = id
	}
	return nil
}

func (r *mongoCardComboRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.CardCombo, error) {
	combo := &model.CardCombo{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(combo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoCardComboRepository.FindByID: %w", err)
	}
	return combo, nil
}

func (r *mongoCardComboRepository) List(ctx context.Context) ([]model.CardCombo, error) {
	return r.findAll(ctx, bson.M{}, "List")
}

func (r *mongoCardComboRepository) ListSince(ctx context.Context, since time.Time) ([]model.CardCombo, error) {
	return r.findAll(ctx, bson.M{"updated": bson.M{"$gte": since}}, "ListSince")
}

func (r *mongoCardComboRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.CardCombo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoCardComboRepository.%s: %w", op, err)
	}
	combos := []model.CardCombo{}
	if err := cursor.All(ctx, &combos); err != nil {
		return nil, fmt.Errorf("mongoCardComboRepository.%s: %w", op, err)
	}
	return combos, nil
}

func (r *mongoCardComboRepository) Update(ctx context.Context, combo *model.CardCombo) error {
	combo.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": combo.ID}, combo)
	if err != nil {
		return fmt.Errorf("mongoCardComboRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoCardComboRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoCardComboRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
