package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/labyrinth/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		for _, format := range []string{"console", "json"} {
			log, err := New(config.LogConfig{Level: tt.level, Format: format})
			if err != nil {
				t.Fatalf("New(%q, %s) error = %v", tt.level, format, err)
			}
			if got := log.Level(); got != tt.want {
				t.Errorf("New(%q, %s).Level() = %v, want %v", tt.level, format, got, tt.want)
			}
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labyrinth.log")
	log, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("chunk served")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "chunk served") {
		t.Errorf("log file = %q, want it to contain the message", data)
	}
}

func TestNewViewerWithoutFileIsSilent(t *testing.T) {
	log, err := NewViewer(config.LogConfig{Level: "debug"})
	if err != nil {
		t.Fatalf("NewViewer() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("viewer logger without a file should be a no-op")
	}
}
