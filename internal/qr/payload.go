package qr

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// PayloadType is the only payload type accepted from a scan.
const PayloadType = "tile"

// TilePayload is the wire shape embedded in every tile QR code. The three
// required fields are a scan-boundary contract: readers on other platforms
// depend on these exact key names.
type TilePayload struct {
	Type       string `json:"type"`
	TileID     string `json:"tileId"`
	ShowroomID string `json:"showroomId"`
	WebURL     string `json:"webUrl,omitempty"`
}

// ScanResult is a validated payload with parsed identifiers.
type ScanResult struct {
	TileID     uuid.UUID
	ShowroomID uuid.UUID
	WebURL     string
}

// ParseTilePayload validates a scanned payload. Malformed JSON, a wrong type
// tag, or unusable identifiers all reject with INVALID_QR; the parser never
// panics on hostile input.
func ParseTilePayload(raw string) (*ScanResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQR, "empty payload")
	}

	var payload TilePayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidQR, err, "payload is not valid JSON")
	}
	if payload.Type != PayloadType {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQR, "payload type must be tile")
	}

	tileID, err := uuid.Parse(strings.TrimSpace(payload.TileID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidQR, err, "invalid tile id")
	}
	showroomID, err := uuid.Parse(strings.TrimSpace(payload.ShowroomID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidQR, err, "invalid showroom id")
	}

	return &ScanResult{
		TileID:     tileID,
		ShowroomID: showroomID,
		WebURL:     strings.TrimSpace(payload.WebURL),
	}, nil
}

// EncodeTilePayload builds the canonical JSON payload for a tile.
func EncodeTilePayload(tileID, showroomID uuid.UUID, webURL string) ([]byte, error) {
	payload := TilePayload{
		Type:       PayloadType,
		TileID:     tileID.String(),
		ShowroomID: showroomID.String(),
		WebURL:     webURL,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode qr payload")
	}
	return encoded, nil
}
