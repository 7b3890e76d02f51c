package analytics

import (
	"context"
	"fmt"

	"github.com/tilevista/tilevista-backend/internal/analytics/query"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
)

// Service provides analytics reports derived from tile events.
type Service interface {
	// ShowroomSummary returns views and application KPIs for one showroom.
	ShowroomSummary(ctx context.Context, req types.ShowroomQueryRequest) (*types.ShowroomSummaryResponse, error)
	// Aggregate returns per-showroom totals across the whole platform.
	Aggregate(ctx context.Context, req types.AggregateQueryRequest) (*types.AggregateResponse, error)
}

type service struct {
	showrooms query.ShowroomService
}

// NewService builds an analytics service backed by BigQuery.
func NewService(client *bigquery.Client, project, dataset, table string) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("bigquery client required")
	}

	showrooms, err := query.NewShowroomService(client, project, dataset, table)
	if err != nil {
		return nil, err
	}

	return &service{showrooms: showrooms}, nil
}

func (s *service) ShowroomSummary(ctx context.Context, req types.ShowroomQueryRequest) (*types.ShowroomSummaryResponse, error) {
	return s.showrooms.Summary(ctx, req)
}

func (s *service) Aggregate(ctx context.Context, req types.AggregateQueryRequest) (*types.AggregateResponse, error) {
	return s.showrooms.Aggregate(ctx, req)
}
