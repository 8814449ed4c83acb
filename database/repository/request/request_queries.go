package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sevahub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a request by its unique id.
func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) ListByWorker(ctx context.Context, workerID string) ([]models.ServiceRequest, error) {
	return r.find(ctx, bson.M{"workerId": workerID})
}

func (r *MongoRequestRepo) ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoRequestRepo) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRequestRepo) find(ctx context.Context, filter bson.M) ([]models.ServiceRequest, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]models.ServiceRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return requests, nil
}

// CountActive counts requests still moving through the lifecycle.
func (r *MongoRequestRepo) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$nin": bson.A{models.StatusRejected, models.StatusCompleted}}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active requests: %w", err)
	}
	return n, nil
}

// CountCompletedSince counts requests that reached completed at or after since.
func (r *MongoRequestRepo) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, completedSinceFilter(since))
	if err != nil {
		return 0, fmt.Errorf("failed to count completed requests: %w", err)
	}
	return n, nil
}

// completedSinceFilter ignores updatedAt, which later writes such as a rating also move.
func completedSinceFilter(since time.Time) bson.M {
	return bson.M{
		"status":      models.StatusCompleted,
		"completedAt": bson.M{"$gte": since},
	}
}
