// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// per-blood-group inventory ledger.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// ListInventory returns all inventory rows ordered by blood group.
func ListInventory(ctx context.Context, db *gorm.DB) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	err := db.WithContext(ctx).Order("blood_group asc").Find(&out).Error
	return out, err
}

// GetInventory fetches the inventory row for a blood group, or ErrNotFound.
func GetInventory(ctx context.Context, db *gorm.DB, bloodGroup string) (*domain.InventoryRecord, error) {
	var r domain.InventoryRecord
	if err := db.WithContext(ctx).Where("blood_group = ?", bloodGroup).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertInventory sets the available and critical unit counts for a blood
// group, creating the row on first write. The unique index on blood_group
// makes the write atomic, so concurrent setters cannot create duplicate
// rows for the same group.
func UpsertInventory(ctx context.Context, db *gorm.DB, bloodGroup string, available, critical int) (*domain.InventoryRecord, error) {
	now := time.Now().UTC()
	rec := &domain.InventoryRecord{
		ID:             uuid.NewString(),
		BloodGroup:     bloodGroup,
		AvailableUnits: available,
		CriticalLevel:  critical,
		LastUpdated:    now,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "blood_group"}},
			DoUpdates: clause.Assignments(map[string]any{
				"available_units": available,
				"critical_level":  critical,
				"last_updated":    now,
			}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, err
	}
	return GetInventory(ctx, db, bloodGroup)
}
