package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContextAttributesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "json")

	ctx := WithAttrs(context.Background(), slog.String("request_id", "req-1"))
	ctx = WithAttrs(ctx, slog.String("user_id", "u-1"))
	logger.InfoContext(ctx, "plan generated", slog.Int("weeks", 12))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	delete(got, "time")
	want := map[string]any{
		"level":      "INFO",
		"msg":        "plan generated",
		"weeks":      float64(12),
		"request_id": "req-1",
		"user_id":    "u-1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log record mismatch (-want +got):\n%s", diff)
	}
}

func TestWithAttrsDoesNotLeakBetweenBranches(t *testing.T) {
	base := WithAttrs(context.Background(), slog.String("a", "1"))
	left := WithAttrs(base, slog.String("b", "2"))
	right := WithAttrs(base, slog.String("c", "3"))

	l, _ := left.Value(attrsKey).([]slog.Attr)
	r, _ := right.Value(attrsKey).([]slog.Attr)
	if len(l) != 2 || len(r) != 2 || l[1].Key != "b" || r[1].Key != "c" {
		t.Errorf("left = %v, right = %v", l, r)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %s", buf.String())
	}
}
