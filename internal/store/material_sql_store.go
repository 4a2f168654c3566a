package store

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lexvault/internal/domain"
)

// materialRow is the materials table. Bundle fields are stored as BLOBs.
type materialRow struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Kind        string `gorm:"not null"`
	Size        int64
	UploadedAt  time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	Ciphertext         []byte
	IV                 []byte
	EphemeralPublicKey []byte
	Signature          []byte
}

func (materialRow) TableName() string { return "materials" }

func rowFromMaterial(m domain.Material) materialRow {
	return materialRow{
		ID:                 m.ID.String(),
		Name:               m.Name,
		Description:        m.Description,
		Kind:               string(m.Kind),
		Size:               m.Size,
		UploadedAt:         m.UploadedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
		Ciphertext:         m.Bundle.Ciphertext,
		IV:                 m.Bundle.IV,
		EphemeralPublicKey: m.Bundle.EphemeralPublicKey,
		Signature:          m.Bundle.Signature,
	}
}

func (r materialRow) material() domain.Material {
	return domain.Material{
		ID:          domain.MaterialID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Kind:        domain.MaterialKind(r.Kind),
		Size:        r.Size,
		UploadedAt:  r.UploadedAt,
		UpdatedAt:   r.UpdatedAt,
		Bundle: domain.EncryptedBundle{
			Ciphertext:         r.Ciphertext,
			IV:                 r.IV,
			EphemeralPublicKey: r.EphemeralPublicKey,
			Signature:          r.Signature,
		},
	}
}

// MaterialSQLStore persists materials in SQLite through gorm.
type MaterialSQLStore struct {
	db *gorm.DB
}

// OpenMaterialSQLStore opens (or creates) the database at dsn and migrates
// the materials table. dsn is a file path or a glebarez/sqlite DSN such as
// "file::memory:".
func OpenMaterialSQLStore(dsn string) (*MaterialSQLStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&materialRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &MaterialSQLStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *MaterialSQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveMaterial inserts or replaces the row for m.ID.
func (s *MaterialSQLStore) SaveMaterial(ctx context.Context, m domain.Material) error {
	row := rowFromMaterial(m)
	return s.db.WithContext(ctx).Save(&row).Error
}

// LoadMaterial returns the record for id and whether it exists.
func (s *MaterialSQLStore) LoadMaterial(
	ctx context.Context,
	id domain.MaterialID,
) (domain.Material, bool, error) {
	var row materialRow
	err := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Material{}, false, nil
	}
	if err != nil {
		return domain.Material{}, false, err
	}
	return row.material(), true, nil
}

// ListMaterials returns every stored record.
func (s *MaterialSQLStore) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	var rows []materialRow
	if err := s.db.WithContext(ctx).Order("uploaded_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Material, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.material())
	}
	return out, nil
}

// DeleteMaterial removes the row for id and reports whether it existed.
func (s *MaterialSQLStore) DeleteMaterial(ctx context.Context, id domain.MaterialID) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&materialRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Compile-time assertion that MaterialSQLStore implements domain.MaterialStore.
var _ domain.MaterialStore = (*MaterialSQLStore)(nil)
