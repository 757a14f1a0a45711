package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

const (
	defaultFilePermissions = os.FileMode(0644)
	defaultDirPermissions  = os.FileMode(0755)
)

var _ ports.CollectionRepository = (*JSONFileRepository)(nil)

// JSONFileRepository keeps the collection in a single indented JSON file.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

func (r *JSONFileRepository) Load(ctx context.Context) (domain.Collection, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.Collection{}, err
	}

	var c domain.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Collection{}, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return c, nil
}

// Save writes the document to a temporary sibling file and renames it over
// the target, so readers never observe a partial write.
func (r *JSONFileRepository) Save(ctx context.Context, c domain.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(r.path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, defaultFilePermissions)
	if err != nil {
		return err
	}
	// Removing after a successful rename is a harmless no-op.
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Encode renders the collection the way it is stored on disk.
func Encode(c domain.Collection) ([]byte, error) {
	return c.Encode()
}
