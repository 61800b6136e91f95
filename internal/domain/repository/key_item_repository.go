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

type KeyItemRepository interface {
	Create(ctx context.Context, item *model.KeyItem) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.KeyItem, error)
	// FindForCreator scopes the lookup to the creating user.
	FindForCreator(ctx context.Context, id, userID bson.ObjectID) (*model.KeyItem, error)
	FindByCreatorAndName(ctx context.Context, userID bson.ObjectID, name string) (*model.KeyItem, error)
	ListByCreator(ctx context.Context, userID bson.ObjectID) ([]model.KeyItem, error)
	ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.KeyItem, error)
	ListSince(ctx context.Context, since time.Time) ([]model.KeyItem, error)
	Update(ctx context.Context, item *model.KeyItem) error
	AddOwner(ctx context.Context, id, ownerID bson.ObjectID) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoKeyItemRepository struct {
	coll *mongo.Collection
}

func NewMongoKeyItemRepository(db *mongo.Database) KeyItemRepository {
	return &mongoKeyItemRepository{coll: db.Collection("keyitems")}
}

func (r *mongoKeyItemRepository) Create(ctx context.Context, item *model.KeyItem) error {
	item.Created = time.Now()
	item.Updated = item.Created
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("mongoKeyItemRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		item.ID = id
	}
	return nil
}

func (r *mongoKeyItemRepository) findOne(ctx context.Context, filter bson.M, op string) (*model.KeyItem, error) {
	item := &model.KeyItem{}
	err := r.coll.FindOne(ctx, filter).Decode(item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoKeyItemRepository.%s: %w", op, err)
	}
	return item, nil
}

func (r *mongoKeyItemRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.KeyItem, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "FindByID")
}

func (r *mongoKeyItemRepository) FindForCreator(ctx context.Context, id, userID bson.ObjectID) (*model.KeyItem, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID}, "FindForCreator")
}

func (r *mongoKeyItemRepository) FindByCreatorAndName(ctx context.Context, userID bson.ObjectID, name string) (*model.KeyItem, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "name": name}, "FindByCreatorAndName")
}

func (r *mongoKeyItemRepository) ListByCreator(ctx context.Context, userID bson.ObjectID) ([]model.KeyItem, error) {
	return r.findAll(ctx, bson.M{"userId": userID}, "ListByCreator")
}

func (r *mongoKeyItemRepository) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.KeyItem, error) {
	return r.findAll(ctx, bson.M{"owners": ownerID}, "ListByOwner")
}

func (r *mongoKeyItemRepository) ListSince(ctx context.Context, since time.Time) ([]model.KeyItem, error) {
	return r.findAll(ctx, bson.M{"updated": bson.M{"$gte": since}}, "ListSince")
}

func (r *mongoKeyItemRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.KeyItem, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoKeyItemRepository.%s: %w", op, err)
	}
	items := []model.KeyItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("mongoKeyItemRepository.%s: %w", op, err)
	}
	return items, nil
}

func (r *mongoKeyItemRepository) Update(ctx context.Context, item *model.KeyItem) error {
	item.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID, "userId": item.UserID}, item)
	if err != nil {
		return fmt.Errorf("mongoKeyItemRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoKeyItemRepository) AddOwner(ctx context.Context, id, ownerID bson.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"owners": ownerID},
		"$set":      bson.M{"updated": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("mongoKeyItemRepository.AddOwner: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoKeyItemRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoKeyItemRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
