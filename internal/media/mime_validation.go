package media

import (
	"fmt"
	"mime"
	"strings"

	"github.com/tilevista/tilevista-backend/pkg/enums"
)

var allowedMimeTypesByKind = map[enums.MediaKind][]string{
	enums.MediaKindTileImage:   {"image/png", "image/jpeg", "image/webp"},
	enums.MediaKindTileTexture: {"image/png", "image/jpeg", "image/webp"},
	enums.MediaKindSellerLogo:  {"image/png", "image/jpeg", "image/webp", "image/svg+xml"},
	enums.MediaKindRoomThumb:   {"image/png", "image/jpeg", "image/webp"},
}

func sniffMimeType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("mime type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("mime type invalid: %w", err)
	}
	if mediaType == "" {
		return "", fmt.Errorf("mime type missing")
	}
	return strings.ToLower(mediaType), nil
}

func isAllowedMime(kind enums.MediaKind, mimeType string) bool {
	for _, candidate := range allowedMimeTypesByKind[kind] {
		if candidate == mimeType {
			return true
		}
	}
	return false
}

func allowedMimeDescription(kind enums.MediaKind) string {
	if types := allowedMimeTypesByKind[kind]; len(types) > 0 {
		return strings.Join(types, ", ")
	}
	return "the approved mime types"
}
