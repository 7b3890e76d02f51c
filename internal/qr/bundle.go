package qr

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// BundleEntry pairs a tile with its rendered QR image for bundling.
type BundleEntry struct {
	Tile models.Tile
	PNG  []byte
}

// BuildBundle packs per-tile QR PNGs into a ZIP together with a CSV manifest
// and a short README, the format sellers print from.
func BuildBundle(showroomName string, entries []BundleEntry, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no tiles to bundle")
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	manifest := &bytes.Buffer{}
	writer := csv.NewWriter(manifest)
	if err := writer.Write([]string{"file", "tile_id", "tile_name", "category", "size", "showroom_id"}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write manifest header")
	}

	for i, entry := range entries {
		fileName := fmt.Sprintf("%03d_%s.png", i+1, slugify(entry.Tile.Name))

		file, err := archive.Create("codes/" + fileName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bundle entry")
		}
		if _, err := file.Write(entry.PNG); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write bundle entry")
		}

		record := []string{
			fileName,
			entry.Tile.ID.String(),
			entry.Tile.Name,
			entry.Tile.Category.String(),
			entry.Tile.Size,
			entry.Tile.ShowroomID.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write manifest row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush manifest")
	}

	manifestFile, err := archive.Create("manifest.csv")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create manifest")
	}
	if _, err := manifestFile.Write(manifest.Bytes()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write manifest")
	}

	readme, err := archive.Create("README.txt")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create readme")
	}
	content := fmt.Sprintf(
		"QR codes for %s\nGenerated %s\n\nEach PNG in codes/ encodes one tile. Scanning opens the tile's detail view.\nmanifest.csv maps files to tiles.\n",
		showroomName, now.UTC().Format(time.RFC3339),
	)
	if _, err := readme.Write([]byte(content)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write readme")
	}

	if err := archive.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "close bundle")
	}
	return buf.Bytes(), nil
}

func slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
