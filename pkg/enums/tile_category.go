package enums

import "fmt"

// TileCategory declares which surfaces a tile is manufactured for.
type TileCategory string

const (
	TileCategoryFloor TileCategory = "floor"
	TileCategoryWall  TileCategory = "wall"
	TileCategoryBoth  TileCategory = "both"
)

var validTileCategories = []TileCategory{
	TileCategoryFloor,
	TileCategoryWall,
	TileCategoryBoth,
}

// String implements fmt.Stringer.
func (t TileCategory) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TileCategory.
func (t TileCategory) IsValid() bool {
	for _, candidate := range validTileCategories {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTileCategory converts raw input into a TileCategory.
func ParseTileCategory(value string) (TileCategory, error) {
	for _, candidate := range validTileCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tile category %q", value)
}
