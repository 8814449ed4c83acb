package models

// RatingLabelNew is shown in place of an average when a worker has no ratings.
const RatingLabelNew = "New"

// WorkerStats are derived from a worker's requests on every read.
type WorkerStats struct {
	TotalJobs     int      `json:"totalJobs"`
	AverageRating *float64 `json:"averageRating"`
	RatingLabel   string   `json:"ratingLabel"` // "4.3" or "New"
}

// WorkerWithStats is a worker profile enriched for listings.
type WorkerWithStats struct {
	UserProfile
	Stats       WorkerStats `json:"stats"`
}
