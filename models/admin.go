package models

// DashboardTotals backs the admin overview.
type DashboardTotals struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalWorkers   int64 `json:"totalWorkers"`
	ActiveRequests int64 `json:"activeRequests"`
	CompletedToday int64 `json:"completedToday"`
}

type SetActiveInput struct {
	Active *bool `json:"active"`
}
