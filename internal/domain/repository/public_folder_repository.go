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

type PublicFolderRepository interface {
	Create(ctx context.Context, folder *model.PublicFolder) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.PublicFolder, error)
	List(ctx context.Context) ([]model.PublicFolder, error)
	ListSince(ctx context.Context, since time.Time) ([]model.PublicFolder, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoPublicFolderRepository struct {
	coll *mongo.Collection
}

func NewMongoPublicFolderRepository(db *mongo.Database) PublicFolderRepository {
	return &mongoPublicFolderRepository{coll: db.Collection("publicfolders")}
}

func (r *mongoPublicFolderRepository) Create(ctx context.Context, folder *model.PublicFolder) error {
	folder.Created = time.Now()
	folder.Updated = folder.Created
	res, err := r.coll.InsertOne(ctx, folder)
	if err != nil {
		return fmt.Errorf("mongoPublicFolderRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		folder.ID = id
	}
	return nil
}

func (r *mongoPublicFolderRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.PublicFolder, error) {
	folder := &model.PublicFolder{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoPublicFolderRepository.FindByID: %w", err)
	}
	return folder, nil
}

func (r *mongoPublicFolderRepository) List(ctx context.Context) ([]model.PublicFolder, error) {
	return r.findAll(ctx, bson.M{}, "List")
}

func (r *mongoPublicFolderRepository) ListSince(ctx context.Context, since time.Time) ([]model.PublicFolder, error) {
	return r.findAll(ctx, bson.M{"updated": bson.M{"$gte": since}}, "ListSince")
}

func (r *mongoPublicFolderRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.PublicFolder, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoPublicFolderRepository.%s: %w", op, err)
	}
	folders := []model.PublicFolder{}
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("mongoPublicFolderRepository.%s: %w", op, err)
	}
	return folders, nil
}

func (r *mongoPublicFolderRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoPublicFolderRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
