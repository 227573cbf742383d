package snapshot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nyxhub/content-sync/internal/snapshot"
)

func TestFileStore_SaveWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	store := snapshot.NewFileStore(filepath.Join(dir, "snapshots"))

	doc := snapshot.Document{ContentType: "article", Body: "# Article\n"}
	path, err := store.Save(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "article_") || !strings.HasSuffix(name, ".md") {
		t.Fatalf("unexpected file name %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != doc.Body {
		t.Fatalf("file content mismatch: %q", data)
	}
}

func TestFileStore_SaveFailsOnUnwritableRoot(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := snapshot.NewFileStore(filepath.Join(blocker, "snapshots"))
	if _, err := store.Save(snapshot.Document{ContentType: "article"}); err == nil {
		t.Fatal("expected an error for unwritable root")
	}
}
