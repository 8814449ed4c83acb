package booking

import (
	"math"
	"strconv"

	"sevahub/models"
)

// ComputeWorkerStats derives the job count and average rating from a worker's requests.
func ComputeWorkerStats(requests []models.ServiceRequest) models.WorkerStats {
	stats := models.WorkerStats{RatingLabel: models.RatingLabelNew}

	sum, rated := 0, 0
	for _, r := range requests {
		if !r.Status.CountsAsJob() {
			continue
		}
		stats.TotalJobs++
		if r.Rating != nil && *r.Rating > 0 {
			sum += *r.Rating
			rated++
		}
	}
	if rated == 0 {
		return stats
	}

	avg := math.Round(float64(sum)/float64(rated)*10) / 10
	stats.AverageRating = &avg
	stats.RatingLabel = strconv.FormatFloat(avg, 'f', 1, 64)
	return stats
}
