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

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListSince(ctx context.Context, since time.Time) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	IncrementMonies(ctx context.Context, id bson.ObjectID, delta int) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection("users")}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	user.Created = time.Now()
	user.Updated = user.Created
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M, op string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.%s: %w", op, err)
	}
	return user, nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "FindByID")
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "FindByUsername")
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "FindByEmail")
}

func (r *mongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.findAll(ctx, bson.M{}, "List")
}

func (r *mongoUserRepository) ListSince(ctx context.Context, since time.Time) ([]model.User, error) {
	return r.findAll(ctx, bson.M{"updated": bson.M{"$gte": since}}, "ListSince")
}

func (r *mongoUserRepository) findAll(ctx context.Context, filter bson.M, op string) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository.%s: %w", op, err)
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongoUserRepository.%s: %w", op, err)
	}
	return users, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *model.User) error {
	user.Updated = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) IncrementMonies(ctx context.Context, id bson.ObjectID, delta int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"monies": delta},
		"$set": bson.M{"updated": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("mongoUserRepository.IncrementMonies: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoUserRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
