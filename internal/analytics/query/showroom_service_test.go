package query

import (
	"strings"
	"testing"
	"time"

	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestNewShowroomServiceValidation(t *testing.T) {
	if _, err := NewShowroomService(nil, "p", "d", "t"); err == nil {
		t.Fatal("expected error when client missing")
	}
	if _, err := NewShowroomService(&bigquery.Client{}, "p", "", "t"); err == nil {
		t.Fatal("expected error when dataset missing")
	}
	svc, err := NewShowroomService(&bigquery.Client{}, "proj", "analytics", "tile_events")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := svc.(*showroomService)
	if impl.tableRef != "`proj.analytics.tile_events`" {
		t.Fatalf("unexpected table ref: %s", impl.tableRef)
	}
}

func TestTileRankingsUseDistinctMetrics(t *testing.T) {
	if !strings.Contains(mostViewedSQL, "ORDER BY views DESC, applications DESC") {
		t.Fatal("most-viewed ranking must order by views first")
	}
	if !strings.Contains(mostViewedSQL, "HAVING views > 0") {
		t.Fatal("most-viewed ranking must drop tiles without views")
	}
	if !strings.Contains(mostAppliedSQL, "ORDER BY applications DESC, views DESC") {
		t.Fatal("most-applied ranking must order by applications first")
	}
	if !strings.Contains(mostAppliedSQL, "HAVING applications > 0") {
		t.Fatal("most-applied ranking must drop tiles without applications")
	}
}

func TestValidateShowroomRequest(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		req  types.ShowroomQueryRequest
		ok   bool
	}{
		{"valid", types.ShowroomQueryRequest{ShowroomID: "s-1", Start: now.Add(-time.Hour), End: now}, true},
		{"missing showroom", types.ShowroomQueryRequest{Start: now.Add(-time.Hour), End: now}, false},
		{"missing range", types.ShowroomQueryRequest{ShowroomID: "s-1"}, false},
		{"inverted range", types.ShowroomQueryRequest{ShowroomID: "s-1", Start: now, End: now.Add(-time.Hour)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateShowroomRequest(tc.req)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
					t.Fatalf("expected validation code, got %v", err)
				}
			}
		})
	}
}
