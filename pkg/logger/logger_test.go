package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestErrorCarriesContextFieldsAndStack(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "tilevista-test", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-42")
	ctx = log.WithShowroomID(ctx, "demo-showroom")

	log.Error(ctx, "tile.lookup", errors.New("tile vanished"))

	entry := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"showroom_id":"demo-showroom"`, `"stack"`, "tile vanished"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("error entry missing %s; entry=%s", want, entry)
		}
	}
}

func TestWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "tilevista-test", Level: zerolog.DebugLevel, Output: buf, WarnStack: true})
	log.Warn(context.Background(), "slow query")
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("warn entry missing stack when enabled; entry=%s", buf.String())
	}

	buf.Reset()
	log = New(Options{ServiceName: "tilevista-test", Level: zerolog.DebugLevel, Output: buf})
	log.Warn(context.Background(), "slow query")
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("warn entry carries stack when disabled; entry=%s", buf.String())
	}
}

func TestWithFieldsScopesToContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "tilevista-test", Level: zerolog.DebugLevel, Output: buf})

	scoped := log.WithFields(context.Background(), map[string]any{"tile_id": "t-1"})
	log.Info(scoped, "scoped")
	if !bytes.Contains(buf.Bytes(), []byte(`"tile_id":"t-1"`)) {
		t.Fatalf("scoped entry missing field; entry=%s", buf.String())
	}

	buf.Reset()
	log.Info(context.Background(), "unscoped")
	if bytes.Contains(buf.Bytes(), []byte("tile_id")) {
		t.Fatalf("field leaked outside its context; entry=%s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
