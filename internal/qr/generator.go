package qr

import (
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tilevista/tilevista-backend/pkg/config"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// Generator renders tile QR payloads as PNG images.
type Generator struct {
	size     int
	level    qrcode.RecoveryLevel
	webBase  string
	detailFn func(tileID, showroomID uuid.UUID) string
}

// NewGenerator builds a generator from the QR configuration.
func NewGenerator(cfg config.QRConfig) (*Generator, error) {
	level, err := parseRecoveryLevel(cfg.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	size := cfg.ImageSize
	if size <= 0 {
		size = 256
	}
	g := &Generator{
		size:    size,
		level:   level,
		webBase: strings.TrimRight(cfg.WebBaseURL, "/"),
	}
	g.detailFn = g.defaultDetailURL
	return g, nil
}

// GeneratePNG renders the canonical payload for the tile as a PNG.
func (g *Generator) GeneratePNG(tileID, showroomID uuid.UUID) ([]byte, error) {
	payload, err := EncodeTilePayload(tileID, showroomID, g.detailFn(tileID, showroomID))
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(payload), g.level, g.size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render qr png")
	}
	return png, nil
}

// DetailURL returns the web fallback URL embedded alongside the payload.
func (g *Generator) DetailURL(tileID, showroomID uuid.UUID) string {
	return g.detailFn(tileID, showroomID)
}

func (g *Generator) defaultDetailURL(tileID, showroomID uuid.UUID) string {
	if g.webBase == "" {
		return ""
	}
	return g.webBase + "/showrooms/" + showroomID.String() + "/tiles/" + tileID.String()
}

func parseRecoveryLevel(value string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "medium":
		return qrcode.Medium, nil
	case "low":
		return qrcode.Low, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, pkgerrors.New(pkgerrors.CodeValidation, "unknown qr recovery level")
	}
}
