package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"lexvault/internal/domain"
)

const materialsFilename = "materials.json"

// MaterialFileStore persists materials to a JSON file under dir.
type MaterialFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewMaterialFileStore returns a MaterialFileStore rooted at dir. The
// directory is created on first write.
func NewMaterialFileStore(dir string) *MaterialFileStore {
	return &MaterialFileStore{dir: dir}
}

func (s *MaterialFileStore) path() string { return filepath.Join(s.dir, materialsFilename) }

func (s *MaterialFileStore) load() (map[domain.MaterialID]domain.Material, error) {
	materials := map[domain.MaterialID]domain.Material{}
	if err := readJSON(s.path(), &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

func (s *MaterialFileStore) save(materials map[domain.MaterialID]domain.Material) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeJSON(s.path(), materials, 0o600)
}

// SaveMaterial inserts or replaces the record for m.ID.
func (s *MaterialFileStore) SaveMaterial(ctx context.Context, m domain.Material) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	materials, err := s.load()
	if err != nil {
		return err
	}
	materials[m.ID] = m
	return s.save(materials)
}

// LoadMaterial returns the record for id and whether it exists.
func (s *MaterialFileStore) LoadMaterial(
	ctx context.Context,
	id domain.MaterialID,
) (domain.Material, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	materials, err := s.load()
	if err != nil {
		return domain.Material{}, false, err
	}
	m, ok := materials[id]
	return m, ok, nil
}

// ListMaterials returns every stored record.
func (s *MaterialFileStore) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	materials, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Material, 0, len(materials))
	for _, m := range materials {
		out = append(out, m)
	}
	return out, nil
}

// DeleteMaterial removes the record for id and reports whether it existed.
func (s *MaterialFileStore) DeleteMaterial(ctx context.Context, id domain.MaterialID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	materials, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := materials[id]; !ok {
		return false, nil
	}
	delete(materials, id)
	return true, s.save(materials)
}

// Compile-time assertion that MaterialFileStore implements domain.MaterialStore.
var _ domain.MaterialStore = (*MaterialFileStore)(nil)
