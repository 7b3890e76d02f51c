package query

import (
	"context"
	"fmt"
	"time"

	cloudbigquery "cloud.google.com/go/bigquery"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"google.golang.org/api/iterator"
)

const (
	defaultTileLimit = 10
	maxTileLimit     = 50

	showroomTotalsSQL = `
SELECT
  COUNTIF(event_type = 'tile_view') AS views,
  COUNTIF(event_type = 'tile_application') AS applications
FROM %s
WHERE showroom_id = @showroomID
  AND occurred_at BETWEEN @start AND @end
`

	viewsSeriesSQL = `
SELECT
  FORMAT_DATE('%%F', DATE_TRUNC(occurred_at, DAY)) AS day,
  COUNTIF(event_type = 'tile_view') AS value
FROM %s
WHERE showroom_id = @showroomID
  AND occurred_at BETWEEN @start AND @end
GROUP BY day
ORDER BY day ASC
`

	mostViewedSQL = `
SELECT
  tile_id,
  COUNTIF(event_type = 'tile_view') AS views,
  COUNTIF(event_type = 'tile_application') AS applications
FROM %s
WHERE showroom_id = @showroomID
  AND occurred_at BETWEEN @start AND @end
GROUP BY tile_id
HAVING views > 0
ORDER BY views DESC, applications DESC
LIMIT @limit
`

	mostAppliedSQL = `
SELECT
  tile_id,
  COUNTIF(event_type = 'tile_view') AS views,
  COUNTIF(event_type = 'tile_application') AS applications
FROM %s
WHERE showroom_id = @showroomID
  AND occurred_at BETWEEN @start AND @end
GROUP BY tile_id
HAVING applications > 0
ORDER BY applications DESC, views DESC
LIMIT @limit
`

	aggregateSQL = `
SELECT
  showroom_id,
  COUNTIF(event_type = 'tile_view') AS views,
  COUNTIF(event_type = 'tile_application') AS applications
FROM %s
WHERE occurred_at BETWEEN @start AND @end
GROUP BY showroom_id
ORDER BY views DESC
`
)

// ShowroomService provides dashboard data from the BigQuery tile_events table.
type ShowroomService interface {
	Summary(ctx context.Context, req types.ShowroomQueryRequest) (*types.ShowroomSummaryResponse, error)
	Aggregate(ctx context.Context, req types.AggregateQueryRequest) (*types.AggregateResponse, error)
}

type showroomService struct {
	client   *bigquery.Client
	tableRef string
}

// NewShowroomService builds a service backed by BigQuery.
func NewShowroomService(client *bigquery.Client, project, dataset, table string) (ShowroomService, error) {
	if client == nil {
		return nil, fmt.Errorf("bigquery client required")
	}
	if project == "" || dataset == "" || table == "" {
		return nil, fmt.Errorf("project, dataset, and table are required")
	}
	return &showroomService{
		client:   client,
		tableRef: fmt.Sprintf("`%s.%s.%s`", project, dataset, table),
	}, nil
}

func (s *showroomService) Summary(ctx context.Context, req types.ShowroomQueryRequest) (*types.ShowroomSummaryResponse, error) {
	if err := validateShowroomRequest(req); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTileLimit
	}
	if limit > maxTileLimit {
		limit = maxTileLimit
	}

	params := []cloudbigquery.QueryParameter{
		{Name: "showroomID", Value: req.ShowroomID},
		{Name: "start", Value: req.Start},
		{Name: "end", Value: req.End},
	}

	views, applications, err := s.queryTotals(ctx, fmt.Sprintf(showroomTotalsSQL, s.tableRef), params)
	if err != nil {
		return nil, err
	}
	series, err := s.querySeries(ctx, fmt.Sprintf(viewsSeriesSQL, s.tableRef), params)
	if err != nil {
		return nil, err
	}
	rankParams := append(params, cloudbigquery.QueryParameter{Name: "limit", Value: int64(limit)})
	mostViewed, err := s.queryTileStats(ctx, fmt.Sprintf(mostViewedSQL, s.tableRef), rankParams)
	if err != nil {
		return nil, err
	}
	mostApplied, err := s.queryTileStats(ctx, fmt.Sprintf(mostAppliedSQL, s.tableRef), rankParams)
	if err != nil {
		return nil, err
	}

	return &types.ShowroomSummaryResponse{
		TotalViews:        views,
		TotalApplications: applications,
		ViewsSeries:       series,
		MostViewed:        mostViewed,
		MostApplied:       mostApplied,
	}, nil
}

func (s *showroomService) Aggregate(ctx context.Context, req types.AggregateQueryRequest) (*types.AggregateResponse, error) {
	if err := validateRange(req.Start, req.End); err != nil {
		return nil, err
	}
	params := []cloudbigquery.QueryParameter{
		{Name: "start", Value: req.Start},
		{Name: "end", Value: req.End},
	}

	iter, err := s.client.Query(ctx, fmt.Sprintf(aggregateSQL, s.tableRef), params)
	if err != nil {
		return nil, fmt.Errorf("query aggregate: %w", err)
	}

	response := &types.AggregateResponse{Showrooms: []types.ShowroomAggregateRow{}}
	for {
		var row struct {
			ShowroomID   string `bigquery:"showroom_id"`
			Views        int64  `bigquery:"views"`
			Applications int64  `bigquery:"applications"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading aggregate row: %w", err)
		}
		response.Showrooms = append(response.Showrooms, types.ShowroomAggregateRow{
			ShowroomID:   row.ShowroomID,
			Views:        row.Views,
			Applications: row.Applications,
		})
	}
	return response, nil
}

func validateShowroomRequest(req types.ShowroomQueryRequest) error {
	if req.ShowroomID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "showroom id required")
	}
	return validateRange(req.Start, req.End)
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end are required")
	}
	if end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end must be after start")
	}
	return nil
}

func (s *showroomService) queryTotals(ctx context.Context, sql string, params []cloudbigquery.QueryParameter) (int64, int64, error) {
	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return 0, 0, fmt.Errorf("query totals: %w", err)
	}
	var row struct {
		Views        int64 `bigquery:"views"`
		Applications int64 `bigquery:"applications"`
	}
	if err := iter.Next(&row); err != nil {
		if err == iterator.Done {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("reading totals row: %w", err)
	}
	return row.Views, row.Applications, nil
}

func (s *showroomService) querySeries(ctx context.Context, sql string, params []cloudbigquery.QueryParameter) ([]types.TimeSeriesPoint, error) {
	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}

	var points []types.TimeSeriesPoint
	for {
		var row struct {
			Day   string `bigquery:"day"`
			Value int64  `bigquery:"value"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading series row: %w", err)
		}
		points = append(points, types.TimeSeriesPoint{Date: row.Day, Value: row.Value})
	}
	return points, nil
}

func (s *showroomService) queryTileStats(ctx context.Context, sql string, params []cloudbigquery.QueryParameter) ([]types.TileStat, error) {
	iter, err := s.client.Query(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("query tile stats: %w", err)
	}

	var stats []types.TileStat
	for {
		var row struct {
			TileID       string `bigquery:"tile_id"`
			Views        int64  `bigquery:"views"`
			Applications int64  `bigquery:"applications"`
		}
		if err := iter.Next(&row); err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("reading tile stats row: %w", err)
		}
		stats = append(stats, types.TileStat{
			TileID:       row.TileID,
			Views:        row.Views,
			Applications: row.Applications,
		})
	}
	return stats, nil
}
