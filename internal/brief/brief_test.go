package brief

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "brief*.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func TestLoad_TrimsAndHashes(t *testing.T) {
	path := writeTempFile(t, "\n  A bakery website with online orders.  \n\n")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Text != "A bakery website with online orders." {
		t.Errorf("Text = %q", b.Text)
	}
	if !strings.HasPrefix(b.Hash, "sha256:") {
		t.Errorf("hash missing sha256 prefix: %q", b.Hash)
	}
	again, _ := Load(path)
	if again.Hash != b.Hash {
		t.Errorf("hash not stable: %q vs %q", b.Hash, again.Hash)
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeTempFile(t, "   \n")
	if _, err := Load(path); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/brief.md"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadReferences_Redacts(t *testing.T) {
	path := writeTempFile(t, "Menu: margherita, marinara\nadmin password: secret\n")
	refs, err := LoadReferences([]string{path})
	if err != nil {
		t.Fatalf("LoadReferences: %v", err)
	}
	if strings.Contains(refs[0].Content, "secret") {
		t.Errorf("content not redacted: %q", refs[0].Content)
	}
	if !strings.Contains(refs[0].Content, "margherita") {
		t.Errorf("content lost: %q", refs[0].Content)
	}
}

func TestCompose(t *testing.T) {
	if got := Compose("just text", nil); got != "just text" {
		t.Errorf("Compose without refs = %q", got)
	}
	out := Compose("A pizzeria", []Reference{{Path: "/tmp/x/menu.md", Content: "margherita"}})
	if !strings.Contains(out, `<reference file="menu.md">`) {
		t.Errorf("missing reference tag: %q", out)
	}
	if !strings.HasPrefix(out, "A pizzeria\n\n") {
		t.Errorf("brief text not first: %q", out)
	}
}
