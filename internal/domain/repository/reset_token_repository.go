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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ResetTokenRepository interface {
	// Upsert stores the token digest for the user, replacing any
	// outstanding one so at most a single reset token is live per user.
	Upsert(ctx context.Context, userID bson.ObjectID, tokenHash string) error
	FindByUserID(ctx context.Context, userID bson.ObjectID) (*model.ResetToken, error)
	DeleteByUserID(ctx context.Context, userID bson.ObjectID) error
}

type mongoResetTokenRepository struct {
	coll *mongo.Collection
}

func NewMongoResetTokenRepository(db *mongo.Database) ResetTokenRepository {
	return &mongoResetTokenRepository{coll: db.Collection("tokens")}
}

func (r *mongoResetTokenRepository) Upsert(ctx context.Context, userID bson.ObjectID, tokenHash string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"token": tokenHash, "created": time.Now()}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongoResetTokenRepository.Upsert: %w", err)
	}
	return nil
}

func (r *mongoResetTokenRepository) FindByUserID(ctx context.Context, userID bson.ObjectID) (*model.ResetToken, error) {
	token := &model.ResetToken{}
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoResetTokenRepository.FindByUserID: %w", err)
	}
	return token, nil
}

func (r *mongoResetTokenRepository) DeleteByUserID(ctx context.Context, userID bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("mongoResetTokenRepository.DeleteByUserID: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
