package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestREPLFromStdin(t *testing.T) {
	out, _, err := execute(t, "C 3 1\nL 1 1 3 1\nQ\n")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasSuffix(out, "-----\n|xxx|\n-----\n") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "enter command:") {
		t.Error("piped stdin should not show the prompt")
	}
}

func TestREPLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmds.txt")
	if err := os.WriteFile(path, []byte("C 2 1\nB 1 1 o\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasSuffix(out, "|oo|\n----\n") {
		t.Errorf("output = %q", out)
	}
}

func TestREPLMissingFile(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil || !strings.HasPrefix(err.Error(), "file not found: ") {
		t.Errorf("err = %v", err)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "asciicanvas.toml")
	if err := os.WriteFile(cfgPath, []byte("[canvas]\nmaxWidth = 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "C 40 1\nC 60 1\n", "--config", cfgPath, "--max-width", "30")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.Count(out, "Error: "); got != 2 {
		t.Errorf("errors = %d, want 2 with --max-width 30:\n%s", got, out)
	}
}

func TestInvalidFlagValue(t *testing.T) {
	_, _, err := execute(t, "", "--history", "0")
	if err == nil {
		t.Error("history 0 should fail validation")
	}
}

func TestScriptCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.lua")
	code := "canvas(4, 2)\nrect(1, 1, 4, 2)\nprint(\"ok\")\n"
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "script", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "ok\n------\n|xxxx|\n|xxxx|\n------\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "asciicanvas dev\n") {
		t.Errorf("output = %q", out)
	}
}

func TestTooManyArgs(t *testing.T) {
	if _, _, err := execute(t, "", "a", "b"); err == nil {
		t.Error("two positional arguments should be rejected")
	}
}
