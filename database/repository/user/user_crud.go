package userRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sevahub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new account document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.UserProfile) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "workerId") {
				return ErrCodeTaken
			}
			return ErrPhoneTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateSetDocument wraps set in $set, stamps updatedAt and returns the stored document.
func (r *MongoUserRepo) UpdateSetDocument(ctx context.Context, id string, set bson.M) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{"updatedAt": time.Now()}
	for k, v := range set {
		doc[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.UserProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": doc}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return &user, nil
}
