package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFormats(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"console", false},
		{"json", false},
		{"", false},
		{"JSON", false},
		{"xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := New(Options{Level: "info", Format: tt.format, Output: &bytes.Buffer{}})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(format=%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComponentLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	NewComponentLogger(logger, "matcher").Info("hello")
	if !strings.Contains(buf.String(), `"component":"matcher"`) {
		t.Fatalf("expected component attribute, got %s", buf.String())
	}
}

func TestComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "guard")
	// Must not panic and must stay silent.
	logger.Info("dropped", Error(errors.New("boom")))
}
