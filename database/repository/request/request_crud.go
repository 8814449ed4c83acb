package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sevahub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new request document.
func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	now := time.Now()
	if req.Date.IsZero() {
		req.Date = now
	}
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// UpdateStatus performs a compare-and-swap on the status field.
func (r *MongoRequestRepo) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) (*models.ServiceRequest, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter, update := statusUpdate(id, from, to, time.Now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update status of request %s: %w", id, err)
	}
	// Nothing matched: tell a missing request apart from a lost race.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStatusConflict
}

// SetRating writes rating and feedback only on a completed request that has none yet.
func (r *MongoRequestRepo) SetRating(ctx context.Context, id string, rating int, feedback string, at time.Time) (*models.ServiceRequest, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter, update := ratingUpdate(id, rating, feedback, at)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to rate request %s: %w", id, err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrNotRatable
}

// statusUpdate builds the compare-and-swap for a status move. The filter only
// matches while the request is still in from; leaving the blocking states
// releases the slot and reaching completed stamps completedAt.
func statusUpdate(id string, from, to models.RequestStatus, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"id": id, "status": from}
	set := bson.M{"status": to, "updatedAt": now}
	if to == models.StatusCompleted {
		set["completedAt"] = now
	}
	update := bson.M{"$set": set}
	if !to.BlocksSlot() {
		update["$unset"] = bson.M{"slotKey": ""}
	}
	return filter, update
}

// ratingUpdate builds the rate-once write: it only matches a completed request
// that carries no rating yet.
func ratingUpdate(id string, rating int, feedback string, at time.Time) (bson.M, bson.M) {
	filter := bson.M{
		"id":     id,
		"status": models.StatusCompleted,
		"rating": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"rating":    rating,
		"feedback":  feedback,
		"ratedAt":   at,
		"updatedAt": at,
	}}
	return filter, update
}
