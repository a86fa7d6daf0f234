package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements ports.StationStorage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// StationModel is the GORM model for a station's S1G capability record.
type StationModel struct {
	Addr      string `gorm:"primaryKey"`
	Flags     string
	S1G       bool   `gorm:"column:s1g;index"`
	S1GCap    string `gorm:"column:s1g_cap"` // hex encoded, empty when never advertised
	UpdatedAt time.Time
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Query spans join the request trace; metrics go through prometheus instead.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&StationModel{}); err != nil {
		return nil, err
	}

	return &SQLiteAdapter{db: db}, nil
}

// SaveStationsBatch upserts snapshots in a single transaction.
func (a *SQLiteAdapter) SaveStationsBatch(ctx context.Context, stations []domain.StationSnapshot) error {
	if len(stations) == 0 {
		return nil
	}

	models := make([]StationModel, len(stations))
	for i, s := range stations {
		models[i] = toModel(s)
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			UpdateAll: true,
		}).CreateInBatches(models, 100).Error
	})
}

// GetStation retrieves a station by address.
func (a *SQLiteAdapter) GetStation(ctx context.Context, addr string) (*domain.StationSnapshot, error) {
	var model StationModel
	err := a.db.WithContext(ctx).First(&model, "addr = ?", addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %w", domain.ErrStationNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	snap := toDomain(model)
	return &snap, nil
}

// GetAllStations retrieves all stations.
func (a *SQLiteAdapter) GetAllStations(ctx context.Context) ([]domain.StationSnapshot, error) {
	var models []StationModel
	if err := a.db.WithContext(ctx).Order("addr").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.StationSnapshot, len(models))
	for i, m := range models {
		out[i] = toDomain(m)
	}
	return out, nil
}

// DeleteStation removes a station's record.
func (a *SQLiteAdapter) DeleteStation(ctx context.Context, addr string) error {
	return a.db.WithContext(ctx).Delete(&StationModel{}, "addr = ?", addr).Error
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toModel(s domain.StationSnapshot) StationModel {
	return StationModel{
		Addr:   s.Addr,
		Flags:  s.Flags,
		S1G:    s.S1G,
		S1GCap: s.S1GCap,
	}
}

func toDomain(m StationModel) domain.StationSnapshot {
	return domain.StationSnapshot{
		Addr:   m.Addr,
		Flags:  m.Flags,
		S1G:    m.S1G,
		S1GCap: m.S1GCap,
	}
}

// Ensure interface compliance
var _ ports.StationStorage = (*SQLiteAdapter)(nil)
