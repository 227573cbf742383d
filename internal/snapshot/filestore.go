package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists a copy of each generated snapshot to disk for audit and
// debugging. Writes are best-effort: the orchestrator logs a failure here and
// proceeds with the upload regardless.
type FileStore struct {
	root string
	now  func() time.Time
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root, now: time.Now}
}

// Save writes the document body to {root}/{contentType}_{timestamp}.md and
// returns the written path.
func (s *FileStore) Save(doc Document) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.md", doc.ContentType, s.now().UTC().Format("2006-01-02_15-04-05"))
	path := filepath.Join(s.root, name)

	if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}
	return path, nil
}
