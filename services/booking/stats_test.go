package booking

import (
	"testing"

	"sevahub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(n int) *int { return &n }

func TestComputeWorkerStats(t *testing.T) {
	t.Run("no requests", func(t *testing.T) {
		s := ComputeWorkerStats(nil)
		assert.Equal(t, 0, s.TotalJobs)
		assert.Nil(t, s.AverageRating)
		assert.Equal(t, models.RatingLabelNew, s.RatingLabel)
	})

	t.Run("jobs without ratings", func(t *testing.T) {
		s := ComputeWorkerStats([]models.ServiceRequest{
			{Status: models.StatusCompleted},
			{Status: models.StatusWorkerCompleted},
			{Status: models.StatusPending},
			{Status: models.StatusRejected},
		})
		assert.Equal(t, 2, s.TotalJobs)
		assert.Nil(t, s.AverageRating)
		assert.Equal(t, "New", s.RatingLabel)
	})

	t.Run("rounded average", func(t *testing.T) {
		s := ComputeWorkerStats([]models.ServiceRequest{
			{Status: models.StatusCompleted, Rating: rating(5)},
			{Status: models.StatusCompleted, Rating: rating(4)},
			{Status: models.StatusCompleted, Rating: rating(4)},
			{Status: models.StatusInProgress},
		})
		assert.Equal(t, 3, s.TotalJobs)
		require.NotNil(t, s.AverageRating)
		assert.InDelta(t, 4.3, *s.AverageRating, 1e-9)
		assert.Equal(t, "4.3", s.RatingLabel)
	})

	t.Run("ratings on unfinished requests are ignored", func(t *testing.T) {
		s := ComputeWorkerStats([]models.ServiceRequest{
			{Status: models.StatusCompleted, Rating: rating(4)},
			{Status: models.StatusRejected, Rating: rating(1)},
			{Status: models.StatusAccepted, Rating: rating(1)},
		})
		assert.Equal(t, 1, s.TotalJobs)
		require.NotNil(t, s.AverageRating)
		assert.InDelta(t, 4.0, *s.AverageRating, 1e-9)
	})

	t.Run("whole number keeps one decimal", func(t *testing.T) {
		s := ComputeWorkerStats([]models.ServiceRequest{{Status: models.StatusCompleted, Rating: rating(5)}})
		assert.Equal(t, "5.0", s.RatingLabel)
	})
}
