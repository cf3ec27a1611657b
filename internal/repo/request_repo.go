// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// BloodRequest model, including the one-way "fulfill" transition.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// CreateBloodRequest inserts a new blood request owned by the recipient.
func CreateBloodRequest(ctx context.Context, db *gorm.DB, r *domain.BloodRequest) (*domain.BloodRequest, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetBloodRequest fetches a blood request by ID, or ErrNotFound if missing.
func GetBloodRequest(ctx context.Context, db *gorm.DB, id string) (*domain.BloodRequest, error) {
	var r domain.BloodRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequestsByRecipient returns a recipient's requests, newest first.
func ListRequestsByRecipient(ctx context.Context, db *gorm.DB, recipientID string) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	err := db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListUnfulfilledRequests returns open requests ordered by required date so
// the most imminent need sorts first.
func ListUnfulfilledRequests(ctx context.Context, db *gorm.DB) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	err := db.WithContext(ctx).
		Where("is_fulfilled = ?", false).
		Order("required_date asc").
		Find(&out).Error
	return out, err
}

// CountRequestsByRecipient returns total and fulfilled request counts for a
// recipient in two scoped queries.
func CountRequestsByRecipient(ctx context.Context, db *gorm.DB, recipientID string) (total, fulfilled int64, err error) {
	q := db.WithContext(ctx).Model(&domain.BloodRequest{}).Where("recipient_id = ?", recipientID)
	if err = q.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = db.WithContext(ctx).
		Model(&domain.BloodRequest{}).
		Where("recipient_id = ? AND is_fulfilled = ?", recipientID, true).
		Count(&fulfilled).Error
	return total, fulfilled, err
}

// MarkRequestFulfilled flips the fulfilled flag on an open request and
// stamps the fulfillment time. Restricted to unfulfilled rows so the
// transition never reverts; a repeat call affects zero rows.
func MarkRequestFulfilled(ctx context.Context, db *gorm.DB, id string, at time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.BloodRequest{}).
		Where("id = ? AND is_fulfilled = ?", id, false).
		Updates(map[string]any{"is_fulfilled": true, "fulfilled_date": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
