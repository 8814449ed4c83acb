package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sevahub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workerCodePrefix = "WRK"

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.UserProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves an account by its unique id.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByPhone retrieves an account by phone number.
func (r *MongoUserRepo) GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

// ListWorkers returns workers sorted by name.
func (r *MongoUserRepo) ListWorkers(ctx context.Context, f WorkerFilter) ([]models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleWorker}
	if f.Service != "" {
		filter["services"] = f.Service
	}
	if f.ActiveOnly {
		// Accounts created before the flag existed count as active.
		filter["isActive"] = bson.M{"$ne": false}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := make([]models.UserProfile, 0)
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}
	return workers, nil
}

// NextWorkerCode finds the highest WRK number in use and returns the one after it.
func (r *MongoUserRepo) NextWorkerCode(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"workerId": bson.M{"$regex": "^" + workerCodePrefix + `\d+$`}}}},
		{{Key: "$project", Value: bson.M{
			"n": bson.M{"$toInt": bson.M{"$substrCP": bson.A{"$workerId", len(workerCodePrefix), 10}}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "max": bson.M{"$max": "$n"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate worker codes: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Max int `bson:"max"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}

	next := 1
	if len(result) > 0 {
		next = result[0].Max + 1
	}
	return FormatWorkerCode(next), nil
}

// FormatWorkerCode renders n as WRK followed by at least three digits.
func FormatWorkerCode(n int) string {
	return fmt.Sprintf("%s%03d", workerCodePrefix, n)
}

// CountByRole counts accounts with the role.
func (r *MongoUserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s accounts: %w", role, err)
	}
	return n, nil
}
