package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setupvault/internal/logging"
)

func TestConsoleFormatWritesReadableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("scan complete", logging.String("source", "homebrew"), logging.Int("new", 3))
	logger.Debug("low level detail")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "INFO") || !strings.Contains(text, "scan complete") {
		t.Fatalf("missing info line in:\n%s", text)
	}
	if !strings.Contains(text, "source=homebrew") || !strings.Contains(text, "new=3") {
		t.Fatalf("missing attrs in:\n%s", text)
	}
	if !strings.Contains(text, "DEBUG") {
		t.Fatalf("debug level should be enabled, got:\n%s", text)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should appear")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "should be dropped") {
		t.Fatalf("info line leaked through warn filter:\n%s", text)
	}
	if !strings.Contains(text, "should appear") {
		t.Fatalf("warn line missing:\n%s", text)
	}
}

func TestJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("structured", logging.String("source", "npm"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"source":"npm"`) {
		t.Fatalf("expected JSON attrs, got:\n%s", data)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format to be rejected")
	}
}
