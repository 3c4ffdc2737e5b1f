package observability_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"travelnest/internal/adapters/observability"
)

func TestNewTestLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewTestLogger(&buf)
	l.Debug().Msg("hidden")
	l.Info().Str("hotel_id", "1").Msg("catalog loaded")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("want 1 line (debug filtered), got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["service"] != "travelnest" || rec["hotel_id"] != "1" || rec["message"] != "catalog loaded" {
		t.Fatalf("unexpected record %v", rec)
	}
}
