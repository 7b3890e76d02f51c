package qr

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestParseTilePayloadRoundTrip(t *testing.T) {
	tileID := uuid.New()
	showroomID := uuid.New()

	encoded, err := EncodeTilePayload(tileID, showroomID, "https://tilevista.app/t/1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	result, err := ParseTilePayload(string(encoded))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.TileID != tileID || result.ShowroomID != showroomID {
		t.Fatalf("identity mismatch: %+v", result)
	}
	if result.WebURL != "https://tilevista.app/t/1" {
		t.Fatalf("web url mismatch: %q", result.WebURL)
	}
}

func TestParseTilePayloadMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "not-json"},
		{"empty", ""},
		{"whitespace", "   "},
		{"json array", `["tile"]`},
		{"wrong type tag", fmt.Sprintf(`{"type":"coupon","tileId":"%s","showroomId":"%s"}`, uuid.New(), uuid.New())},
		{"missing tile id", fmt.Sprintf(`{"type":"tile","showroomId":"%s"}`, uuid.New())},
		{"missing showroom id", fmt.Sprintf(`{"type":"tile","tileId":"%s"}`, uuid.New())},
		{"garbage tile id", fmt.Sprintf(`{"type":"tile","tileId":"zzz","showroomId":"%s"}`, uuid.New())},
		{"numeric fields", `{"type":"tile","tileId":1,"showroomId":2}`},
		{"truncated json", `{"type":"tile","tileId":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseTilePayload(tc.raw)
			if err == nil {
				t.Fatalf("expected INVALID_QR, got result %+v", result)
			}
			if !pkgerrors.Is(err, pkgerrors.CodeInvalidQR) {
				t.Fatalf("expected INVALID_QR, got %v", err)
			}
		})
	}
}

func TestParseTilePayloadIgnoresExtraFields(t *testing.T) {
	tileID := uuid.New()
	showroomID := uuid.New()
	raw := fmt.Sprintf(`{"type":"tile","tileId":"%s","showroomId":"%s","extra":"ignored"}`, tileID, showroomID)

	result, err := ParseTilePayload(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.TileID != tileID {
		t.Fatalf("tile id mismatch: %s", result.TileID)
	}
}
