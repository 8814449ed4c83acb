package requestRepo

import (
	"testing"
	"time"

	"sevahub/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStatusUpdate(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name            string
		from, to        models.RequestStatus
		releasesSlot    bool
		stampsCompleted bool
	}{
		{"accept keeps slot", models.StatusPending, models.StatusAccepted, false, false},
		{"arrival keeps slot", models.StatusAccepted, models.StatusUserStarted, false, false},
		{"start keeps slot", models.StatusUserStarted, models.StatusInProgress, false, false},
		{"reject releases slot", models.StatusPending, models.StatusRejected, true, false},
		{"mark done releases slot", models.StatusInProgress, models.StatusWorkerCompleted, true, false},
		{"verify completes", models.StatusWorkerCompleted, models.StatusCompleted, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, update := statusUpdate("req-1", tt.from, tt.to, now)

			assert.Equal(t, bson.M{"id": "req-1", "status": tt.from}, filter)

			set := update["$set"].(bson.M)
			assert.Equal(t, tt.to, set["status"])
			assert.Equal(t, now, set["updatedAt"])

			if tt.stampsCompleted {
				assert.Equal(t, now, set["completedAt"])
			} else {
				assert.NotContains(t, set, "completedAt")
			}

			if tt.releasesSlot {
				assert.Equal(t, bson.M{"slotKey": ""}, update["$unset"])
			} else {
				assert.NotContains(t, update, "$unset")
			}
		})
	}
}

func TestRatingUpdate(t *testing.T) {
	at := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	filter, update := ratingUpdate("req-1", 4, "Good work", at)

	assert.Equal(t, "req-1", filter["id"])
	assert.Equal(t, models.StatusCompleted, filter["status"])
	assert.Equal(t, bson.M{"$exists": false}, filter["rating"])

	set := update["$set"].(bson.M)
	assert.Equal(t, 4, set["rating"])
	assert.Equal(t, "Good work", set["feedback"])
	assert.Equal(t, at, set["ratedAt"])
	assert.NotContains(t, set, "completedAt")
	assert.NotContains(t, set, "status")
}

func TestCompletedSinceFilter(t *testing.T) {
	since := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	filter := completedSinceFilter(since)

	assert.Equal(t, models.StatusCompleted, filter["status"])
	assert.Equal(t, bson.M{"$gte": since}, filter["completedAt"])
	assert.NotContains(t, filter, "updatedAt")
}
