package tiles

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// Expected header: name,category,size,price,in_stock,image_url,texture_url
// (in_stock and the URL columns are optional).
const maxImportRows = 1000

// ImportCSV bulk-creates tiles from a CSV stream. Rows are validated and
// inserted independently: a bad row is reported and skipped, the rest of the
// file still imports.
func (s *service) ImportCSV(ctx context.Context, sellerID uuid.UUID, r io.Reader) (*ImportReport, error) {
	_, showroom, err := s.ensureActiveSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv file is empty")
	}
	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Rows: []ImportRowResult{}}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Failed++
			report.Rows = append(report.Rows, ImportRowResult{Line: line, Error: "malformed csv row"})
			continue
		}
		if len(report.Rows) >= maxImportRows {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("import exceeds %d rows", maxImportRows))
		}

		input, name, err := parseImportRow(record, columns)
		if err != nil {
			report.Failed++
			report.Rows = append(report.Rows, ImportRowResult{Line: line, Name: name, Error: err.Error()})
			continue
		}

		tile := &models.Tile{
			ShowroomID: showroom.ID,
			SellerID:   sellerID,
			Name:       input.Name,
			Category:   input.Category,
			Size:       input.Size,
			Price:      input.Price,
			InStock:    input.InStock,
			ImageURL:   input.ImageURL,
			TextureURL: input.TextureURL,
		}
		created, err := s.tiles.Create(ctx, tile)
		if err != nil {
			report.Failed++
			report.Rows = append(report.Rows, ImportRowResult{Line: line, Name: name, Error: "insert failed"})
			continue
		}

		report.Created++
		id := created.ID
		report.Rows = append(report.Rows, ImportRowResult{Line: line, Name: name, TileID: &id})
	}

	return report, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "category", "size", "price"} {
		if _, ok := columns[required]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("csv header missing %q column", required))
		}
	}
	return columns, nil
}

func parseImportRow(record []string, columns map[string]int) (CreateTileInput, string, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return CreateTileInput{}, name, fmt.Errorf("name is required")
	}

	category, err := enums.ParseTileCategory(field("category"))
	if err != nil {
		return CreateTileInput{}, name, fmt.Errorf("invalid category %q", field("category"))
	}

	size := field("size")
	if size == "" {
		return CreateTileInput{}, name, fmt.Errorf("size is required")
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return CreateTileInput{}, name, fmt.Errorf("invalid price %q", field("price"))
	}
	if price.IsNegative() {
		return CreateTileInput{}, name, fmt.Errorf("price cannot be negative")
	}

	inStock := true
	if raw := field("in_stock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return CreateTileInput{}, name, fmt.Errorf("invalid in_stock %q", raw)
		}
		inStock = parsed
	}

	input := CreateTileInput{
		Name:     name,
		Category: category,
		Size:     size,
		Price:    price,
		InStock:  inStock,
	}
	if url := field("image_url"); url != "" {
		input.ImageURL = &url
	}
	if url := field("texture_url"); url != "" {
		input.TextureURL = &url
	}
	return input, name, nil
}
