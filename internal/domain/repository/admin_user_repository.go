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

type AdminUserRepository interface {
	Create(ctx context.Context, admin *model.AdminUser) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Update(ctx context.Context, admin *model.AdminUser) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoAdminUserRepository struct {
	coll *mongo.Collection
}

func NewMongoAdminUserRepository(db *mongo.Database) AdminUserRepository {
	return &mongoAdminUserRepository{coll: db.Collection("adminusers")}
}

func (r *mongoAdminUserRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	admin.Created = time.Now()
	res, err := r.coll.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("admin with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoAdminUserRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		admin.ID = id
	}
	return nil
}

func (r *mongoAdminUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.AdminUser, error) {
	admin := &model.AdminUser{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoAdminUserRepository.FindByID: %w", err)
	}
	return admin, nil
}

func (r *mongoAdminUserRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	admin := &model.AdminUser{}
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoAdminUserRepository.FindByUsername: %w", err)
	}
	return admin, nil
}

func (r *mongoAdminUserRepository) Update(ctx context.Context, admin *model.AdminUser) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": admin.ID}, admin)
	if err != nil {
		return fmt.Errorf("mongoAdminUserRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoAdminUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoAdminUserRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
