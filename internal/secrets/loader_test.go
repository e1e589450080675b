package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Name: "gemini api key", Value: "  abc123\n"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "abc123" {
		t.Errorf("expected trimmed value abc123, got %q", got)
	}
}

func TestLoadFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "render api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "from-file" {
		t.Errorf("expected file value to win, got %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(Source{Name: "gemini api key"}); err == nil {
		t.Error("expected an error for an unconfigured secret")
	}

	if _, err := Load(Source{Name: "gemini api key", File: "/nonexistent/key"}); err == nil {
		t.Error("expected an error for an unreadable secret file")
	}
}
