package router

import (
	"context"

	"github.com/tilevista/tilevista-backend/internal/analytics/types"
)

type fakeWriter struct {
	inserted []types.TileEventRow
	err      error
}

func (f *fakeWriter) InsertTileEvent(_ context.Context, row types.TileEventRow) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, row)
	return nil
}
