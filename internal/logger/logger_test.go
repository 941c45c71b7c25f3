package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitWithFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Init(Config{Debug: true, Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("booking engine started", "port", "8080")

	if _, err := os.Stat(filepath.Join(dir, "salon-scheduler.log")); err != nil {
		t.Errorf("expected log file to be created: %v", err)
	}
}

func TestInitStderrOnly(t *testing.T) {
	if err := Init(Config{}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Debug("suppressed at info level")
	Warn("still fine")
}
