package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/table"
)

// Extensions tried, in order, for each default table file
var fileExtensions = []string{".csv", ".xlsx"}

// FileProvider reads suppliers.csv|xlsx and inventory.csv|xlsx from Dir
type FileProvider struct {
	Dir string
}

// NewFileProvider creates a provider reading from dir
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// Load reads both tables from disk
func (p *FileProvider) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	suppliers, err := p.readTable(engine.SuppliersTable)
	if err != nil {
		return nil, err
	}
	inventory, err := p.readTable(engine.InventoryTable)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Suppliers: suppliers,
		Inventory: inventory,
		Source:    "files:" + p.Dir,
		LoadedAt:  time.Now(),
	}, nil
}

func (p *FileProvider) readTable(name string) (*table.Table, error) {
	for _, ext := range fileExtensions {
		path := filepath.Join(p.Dir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		t, err := table.Read(name, path, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("no %s table in %s (tried %s)", name, p.Dir, strings.Join(fileExtensions, ", "))
}

// IsTableFile reports whether path names one of the default table files
func IsTableFile(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem != engine.SuppliersTable && stem != engine.InventoryTable {
		return false
	}
	for _, e := range fileExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
