package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkingDirectory(t *testing.T) {
	dir := t.TempDir()

	got, err := workingDirectory([]string{dir})
	if err != nil {
		t.Fatalf("workingDirectory: %v", err)
	}
	if got != dir {
		t.Errorf("dir = %q, want %q", got, dir)
	}

	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := workingDirectory([]string{file}); err == nil {
		t.Error("expected error for regular file")
	}
	if _, err := workingDirectory([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestToolCommand(t *testing.T) {
	if got := toolCommand(""); got != "mkvmerge" {
		t.Errorf("toolCommand(\"\") = %q", got)
	}
	if got := toolCommand("/opt/mkvtoolnix/mkvmerge"); got != "/opt/mkvtoolnix/mkvmerge" {
		t.Errorf("toolCommand = %q", got)
	}
}

func TestExitCodeError(t *testing.T) {
	err := error(&exitCodeError{code: exitPartialFailure, message: "2 of 5 failed"})
	var exit *exitCodeError
	if !errors.As(err, &exit) {
		t.Fatal("errors.As failed")
	}
	if exit.code != exitPartialFailure {
		t.Errorf("code = %d", exit.code)
	}
}

func TestRenderCheckTable(t *testing.T) {
	out := renderCheckTable([][]string{
		{"merge tool", "ok", "/usr/bin/mkvmerge"},
		{"free space", "ok", "120.0 GiB"},
	})
	if !strings.Contains(out, "mkvmerge") || !strings.Contains(out, "120.0 GiB") {
		t.Errorf("table output missing rows:\n%s", out)
	}
}

func TestRenameCommandReportsUnmatchedVideos(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Show.S01E01.mkv", "Show.S01E02.mkv", "Show.S01E01.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[logging]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"rename", "--config", cfgPath, dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if !strings.Contains(out.String(), "Show.S01E02.mkv") {
		t.Errorf("episode without a subtitle missing from output:\n%s", out.String())
	}
	csvData, err := os.ReadFile(filepath.Join(dir, "renaming_report.csv"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(csvData), "Show.S01E02.mkv") {
		t.Errorf("episode without a subtitle missing from report:\n%s", csvData)
	}
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCommand()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"rename", "embed", "check", "config"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}
}
