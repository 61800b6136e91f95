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

type FolderRepository interface {
	Create(ctx context.Context, folder *model.Folder) error
	// FindForUser scopes the lookup to the folder's owner so one user can
	// never address another user's deck by id.
	FindForUser(ctx context.Context, id, userID bson.ObjectID) (*model.Folder, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Folder, error)
	ListByUserSince(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Folder, error)
	Update(ctx context.Context, folder *model.Folder) error
	Delete(ctx context.Context, id, userID bson.ObjectID) error
}

type mongoFolderRepository struct {
	coll *mongo.Collection
}

func NewMongoFolderRepository(db *mongo.Database) FolderRepository {
	return &mongoFolderRepository{coll: db.Collection("folders")}
}

func (r *mongoFolderRepository) Create(ctx context.Context, folder *model.Folder) error {
	folder.Created = time.Now()
	folder.Updated = folder.Created
	res, err := r.coll.InsertOne(ctx, folder)
	if err != nil {
		return fmt.Errorf("mongoFolderRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		folder.ID = id
	}
	return nil
}

func (r *mongoFolderRepository) FindForUser(ctx context.Context, id, userID bson.ObjectID) (*model.Folder, error) {
	folder := &model.Folder{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoFolderRepository.FindForUser: %w", err)
	}
	return folder, nil
}

func (r *mongoFolderRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Folder, error) {
	return r.findAll(ctx, bson.M{"userId": userID}, "ListByUser")
}

func (r *mongoFolderRepository) ListByUserSince(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Folder, error) {
	return r.findAll(ctx, bson.M{"userId": userID, "updated": bson.M{"$gte": since}}, "ListByUserSince")
}

func (r *mongoFolderRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.Folder, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoFolderRepository.%s: %w", op, err)
	}
	folders := []model.Folder{}
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("mongoFolderRepository.%s: %w", op, err)
	}
	return folders, nil
}

func (r *mongoFolderRepository) Update(ctx context.Context, folder *model.Folder) error {
	folder.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": folder.ID, "userId": folder.UserID}, folder)
	if err != nil {
		return fmt.Errorf("mongoFolderRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoFolderRepository) Delete(ctx context.Context, id, userID bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("mongoFolderRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
