// Package services – InventoryService
//
// This file implements InventoryService, the thin layer over the per-group
// inventory ledger. Writes are upserts keyed by blood group.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// InventoryInput carries the fields accepted when setting a group's stock.
type InventoryInput struct {
	BloodGroup     string `json:"blood_group"`
	AvailableUnits int    `json:"available_units"`
	CriticalLevel  int    `json:"critical_level"`
}

// StockLevel is the dashboard view of one inventory row.
type StockLevel struct {
	domain.InventoryRecord
	Critical bool `json:"critical"`
}

// InventoryService provides inventory ledger operations.
type InventoryService struct {
	DB *gorm.DB
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// List returns every inventory row with its critical flag resolved.
func (s *InventoryService) List(ctx context.Context) ([]StockLevel, error) {
	rows, err := repo.ListInventory(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out := make([]StockLevel, 0, len(rows))
	for _, r := range rows {
		out = append(out, StockLevel{InventoryRecord: r, Critical: r.IsCritical()})
	}
	return out, nil
}

// Get returns the stock level for one blood group.
func (s *InventoryService) Get(ctx context.Context, bloodGroup string) (*StockLevel, error) {
	r, err := repo.GetInventory(ctx, s.DB, bloodGroup)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: no inventory for blood group %s", repo.ErrNotFound, bloodGroup)
		}
		return nil, err
	}
	return &StockLevel{InventoryRecord: *r, Critical: r.IsCritical()}, nil
}

// Set upserts the stock counters for a blood group. Staff action.
func (s *InventoryService) Set(ctx context.Context, in InventoryInput) (*StockLevel, error) {
	in.BloodGroup = strings.TrimSpace(in.BloodGroup)
	if err := requireNonBlank(field{"blood_group", in.BloodGroup}); err != nil {
		return nil, err
	}
	if in.AvailableUnits < 0 {
		return nil, fmt.Errorf("%w: available_units must not be negative", ErrValidation)
	}
	if in.CriticalLevel < 0 {
		return nil, fmt.Errorf("%w: critical_level must not be negative", ErrValidation)
	}

	r, err := repo.UpsertInventory(ctx, s.DB, in.BloodGroup, in.AvailableUnits, in.CriticalLevel)
	if err != nil {
		return nil, err
	}
	return &StockLevel{InventoryRecord: *r, Critical: r.IsCritical()}, nil
}
