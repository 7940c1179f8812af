package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := ContextWithRequestID(context.Background(), "req-1")
	WithRequestID(ctx, log).Debug("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["request_id"] != "req-1" {
		t.Errorf("unexpected entry %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected a timestamp key")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: "bogus", Encoding: "console", Output: &buf})

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at the fallback info level, got %q", buf.String())
	}
	if RequestID(context.Background()) != "" {
		t.Error("expected no request id")
	}
}
