package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	appErrors "github.com/unclebandit/fitkitchen-backend/internal/errors"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// CustomerFileRepository keeps the collection in a single JSON file.
type CustomerFileRepository struct {
	Path string
}

func NewCustomerFileRepository(path string) *CustomerFileRepository {
	return &CustomerFileRepository{Path: path}
}

func (r *CustomerFileRepository) EnsureInitialized() error {
	_, err := os.Stat(r.Path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return &appErrors.StorageReadError{Path: r.Path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), dirPerm); err != nil {
		return &appErrors.StorageWriteError{Path: r.Path, Err: fmt.Errorf("create data directory: %w", err)}
	}
	return r.write(model.NewCustomerDocument())
}

func (r *CustomerFileRepository) Load() (*model.CustomerDocument, error) {
	if err := r.EnsureInitialized(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, &appErrors.StorageReadError{Path: r.Path, Err: err}
	}

	var doc model.CustomerDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &appErrors.StorageReadError{Path: r.Path, Err: fmt.Errorf("decode document: %w", err)}
	}
	if doc.Customers == nil {
		doc.Customers = []model.Customer{}
	}
	return &doc, nil
}

func (r *CustomerFileRepository) Save(doc *model.CustomerDocument) error {
	if err := r.EnsureInitialized(); err != nil {
		return err
	}
	return r.write(doc)
}

// write serializes the full document to a sibling temp file and renames it
// over the target, so readers never see a half-written document.
func (r *CustomerFileRepository) write(doc *model.CustomerDocument) error {
	if doc.Customers == nil {
		doc = model.NewCustomerDocument()
	}

	content, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return &appErrors.StorageWriteError{Path: r.Path, Err: fmt.Errorf("encode document: %w", err)}
	}

	tmp := r.Path + ".tmp"
	if err := os.WriteFile(tmp, content, filePerm); err != nil {
		return &appErrors.StorageWriteError{Path: r.Path, Err: err}
	}
	if err := os.Rename(tmp, r.Path); err != nil {
		os.Remove(tmp)
		return &appErrors.StorageWriteError{Path: r.Path, Err: err}
	}
	return nil
}

var _ CustomerStore = (*CustomerFileRepository)(nil)
