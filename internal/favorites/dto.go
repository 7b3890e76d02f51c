package favorites

import (
	"time"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/internal/tiles"
)

// FavoriteItemDTO pairs a favorited tile with when it was saved.
type FavoriteItemDTO struct {
	Tile        tiles.TileDTO `json:"tile"`
	FavoritedAt time.Time     `json:"favorited_at"`
}

// FavoritesPageDTO is one page of favorited tiles.
type FavoritesPageDTO struct {
	Items      []FavoriteItemDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// FavoriteIDsDTO is one page of favorited tile IDs.
type FavoriteIDsDTO struct {
	TileIDs    []uuid.UUID `json:"tile_ids"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// ToggleResult reports the membership state after a toggle.
type ToggleResult struct {
	TileID    uuid.UUID `json:"tile_id"`
	Favorited bool      `json:"favorited"`
}
