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

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListSince(ctx context.Context, since time.Time) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id, userID bson.ObjectID) error
}

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{coll: db.Collection("products")}
}

func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	product.Created = time.Now()
	product.Updated = product.Created
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("mongoProductRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Product, error) {
	product := &model.Product{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoProductRepository.FindByID: %w", err)
	}
	return product, nil
}

func (r *mongoProductRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.findAll(ctx, bson.M{}, "List")
}

func (r *mongoProductRepository) ListSince(ctx context.Context, since time.Time) ([]model.Product, error) {
	return r.findAll(ctx, bson.M{"updated": bson.M{"$gte": since}}, "ListSince")
}

func (r *mongoProductRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoProductRepository.%s: %w", op, err)
	}
	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongoProductRepository.%s: %w", op, err)
	}
	return products, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *model.Product) error {
	product.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID, "userId": product.UserID}, product)
	if err != nil {
		return fmt.Errorf("mongoProductRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id, userID bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("mongoProductRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
