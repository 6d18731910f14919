package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger = NewComponentLogger(logger, "tracker")
	logger.Info("checked show", String(FieldShowName, "Frieren"), Int("new", 2))

	line := buf.String()
	for _, want := range []string{"INF", "checked show", "component=tracker", "show=Frieren", "new=2"} {
		if !strings.Contains(line, want) {
			t.Fatalf("output %q missing %q", line, want)
		}
	}
}

func TestNewConsoleQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("added", String(FieldShowName, "Breaking Bad"))
	if !strings.Contains(buf.String(), `show="Breaking Bad"`) {
		t.Fatalf("output %q missing quoted value", buf.String())
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("check completed", Int("shows", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "check completed" {
		t.Fatalf("msg = %v", record["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatal("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Fatal("warn record missing")
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	NewNop().Error("nothing happens")
}
