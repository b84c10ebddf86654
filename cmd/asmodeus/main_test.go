package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("readUIMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatalf("explicit ui modes must be honoured")
	}
}

func TestDiagReportsProblems(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.asmod", "    DOX #42\n")
	good := writeFile(t, dir, "good.asmod", "start:\n    POB #1\n    SOB start\n")

	out, err := execute(t, "diag", "--no-cache", "--ui", "off", "--format", "short", bad, good)
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("expected errProblemsFound, got %v", err)
	}
	if !strings.Contains(out, "SEM001") {
		t.Fatalf("missing SEM001 in output:\n%s", out)
	}
	if strings.Contains(out, "good.asmod") {
		t.Fatalf("clean file reported:\n%s", out)
	}

	out, err = execute(t, "diag", "--no-cache", "--ui", "off", good)
	if err != nil {
		t.Fatalf("clean diag: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestDiagHonoursConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "asmodeus.toml", "[analysis]\nextended_instructions = false\n[diag]\ncache = false\n")
	src := writeFile(t, dir, "ext.asmod", "    MNO [10]\n")

	out, err := execute(t, "--config", cfg, "diag", "--ui", "off", "--format", "json", src)
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("expected MNO to be rejected, got %v\n%s", err, out)
	}
	if !strings.Contains(out, `"code": "SEM001"`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
}

func TestDiagRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.asmod", "STP\n")
	if _, err := execute(t, "diag", "--format", "xml", src); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFixRewritesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "fix.asmod", "    DOX #42\n")

	out, err := execute(t, "fix", src)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(out, "Applied 1 fix(es):") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "    DOD #42\n" {
		t.Fatalf("file = %q", got)
	}

	out, err = execute(t, "fix", src)
	if err != nil {
		t.Fatalf("second fix: %v", err)
	}
	if !strings.Contains(out, "No applicable fixes found.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestFixDryRunKeepsFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "dry.asmod", "    DOX #42")

	out, err := execute(t, "fix", "--dry-run", src)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(out, "Would apply 1 fix(es):") || !strings.Contains(out, "    DOD #42\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	data, _ := os.ReadFile(src)
	if string(data) != "    DOX #42" {
		t.Fatalf("dry run modified the file: %q", data)
	}
}

func TestTokenizeEncoded(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "t.asmod", "STP")

	out, err := execute(t, "tokenize", "--encoded", src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if out != "0 0 3 0 0\n" {
		t.Fatalf("tokens = %q", out)
	}
}

func TestSymbols(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "s.asmod", "start:\n    SOB loop\nloop: STP\n")

	out, err := execute(t, "symbols", src)
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	want := src + ":1:1\tstart\n" + src + ":3:1\tloop\n"
	if out != want {
		t.Fatalf("symbols = %q, want %q", out, want)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, `"version"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
