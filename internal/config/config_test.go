package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatalf("expected exists=false for %s", resolved)
	}
	if len(cfg.General.VideoExtensions) == 0 || cfg.General.VideoExtensions[0] != "mkv" {
		t.Fatalf("unexpected defaults: %v", cfg.General.VideoExtensions)
	}
	if !cfg.Embedding.DefaultTrack {
		t.Fatal("default_track should default to true")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[general]
video_extensions = [".MKV", "mp4", "mkv", ""]
subtitle_extensions = ["SRT"]

[renaming]
language_suffix = " ar "

[embedding]
language_code = "ARA"
default_track = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}

	wantVideo := []string{"mkv", "mp4"}
	if len(cfg.General.VideoExtensions) != len(wantVideo) {
		t.Fatalf("video extensions = %v, want %v", cfg.General.VideoExtensions, wantVideo)
	}
	for i, ext := range wantVideo {
		if cfg.General.VideoExtensions[i] != ext {
			t.Fatalf("video extensions = %v, want %v", cfg.General.VideoExtensions, wantVideo)
		}
	}
	if cfg.Renaming.LanguageSuffix != "ar" {
		t.Fatalf("language suffix = %q, want %q", cfg.Renaming.LanguageSuffix, "ar")
	}
	if cfg.Embedding.LanguageCode != "ara" {
		t.Fatalf("language code = %q, want %q", cfg.Embedding.LanguageCode, "ara")
	}
	if cfg.Embedding.DefaultTrack {
		t.Fatal("default_track should be false")
	}
}

func TestValidateRejectsOverlappingExtensions(t *testing.T) {
	cfg := Default()
	cfg.General.SubtitleExtensions = []string{"mkv"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestValidateRejectsBadLanguageCode(t *testing.T) {
	for _, code := range []string{"a", "arabic-long", "a1"} {
		cfg := Default()
		cfg.Embedding.LanguageCode = code
		if err := cfg.Validate(); err == nil {
			t.Errorf("language code %q should be rejected", code)
		}
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[embedding]") {
		t.Fatal("sample config missing embedding section")
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error on second write")
	}
}
