package types

import "time"

// ShowroomQueryRequest carries the input parameters for showroom analytics queries.
type ShowroomQueryRequest struct {
	ShowroomID string
	Start      time.Time
	End        time.Time
	Limit      int
}

// AggregateQueryRequest carries the input parameters for the admin aggregate.
type AggregateQueryRequest struct {
	Start time.Time
	End   time.Time
}

// TimeSeriesPoint describes a single date/value pair returned by the query service.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// TileStat aggregates event counts for one tile.
type TileStat struct {
	TileID       string `json:"tile_id"`
	Views        int64  `json:"views"`
	Applications int64  `json:"applications"`
}

// ShowroomSummaryResponse wraps the showroom KPIs for the seller dashboard.
// MostViewed and MostApplied rank the same tiles by different metrics, so a
// tile can appear in both lists.
type ShowroomSummaryResponse struct {
	TotalViews        int64             `json:"total_views"`
	TotalApplications int64             `json:"total_applications"`
	ViewsSeries       []TimeSeriesPoint `json:"views_series"`
	MostViewed        []TileStat        `json:"most_viewed_tiles"`
	MostApplied       []TileStat        `json:"most_applied_tiles"`
}

// ShowroomAggregateRow is one showroom's totals in the admin aggregate.
type ShowroomAggregateRow struct {
	ShowroomID   string `json:"showroom_id"`
	Views        int64  `json:"views"`
	Applications int64  `json:"applications"`
}

// AggregateResponse spans all showrooms for admin reporting.
type AggregateResponse struct {
	Showrooms []ShowroomAggregateRow `json:"showrooms"`
}
