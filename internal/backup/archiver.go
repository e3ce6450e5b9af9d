package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"faral-orders/internal/tablestore"
)

// DirArchiver writes each snapshot as one JSON document in a directory.
type DirArchiver struct {
	dir string
}

func NewDirArchiver(dir string) *DirArchiver {
	return &DirArchiver{dir: dir}
}

func (a *DirArchiver) Archive(name string, tables []tablestore.Table) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	raw, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	path := filepath.Join(a.dir, name+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var _ Archiver = (*DirArchiver)(nil)
