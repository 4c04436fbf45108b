package models

// StatusCount is one row of a grouped count projection.
type StatusCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ReportSummary is the point-in-time dashboard aggregate. Recomputed from
// scratch on every request; no caching.
type ReportSummary struct {
	Total              int64         `json:"total"`
	ByStatus           []StatusCount `json:"by_status"`
	ByDepartment       []StatusCount `json:"by_department"`
	ByType             []StatusCount `json:"by_type"`
	Last7Days          int64         `json:"last_7_days"`
	Last30Days         int64         `json:"last_30_days"`
	AvgResolutionHours float64       `json:"avg_resolution_hours"`
	RatingDistribution []StatusCount `json:"rating_distribution"`
}
