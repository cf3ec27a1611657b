// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Appointment model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// CreateAppointment inserts a new appointment in the pending state.
func CreateAppointment(ctx context.Context, db *gorm.DB, a *domain.Appointment) (*domain.Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = domain.AppointmentPending
	}
	a.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAppointment fetches an appointment by ID, or ErrNotFound if missing.
func GetAppointment(ctx context.Context, db *gorm.DB, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAppointmentsByUser returns a user's appointments, soonest first.
func ListAppointmentsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date asc").
		Find(&out).Error
	return out, err
}

// ListAppointmentsByStatus returns all appointments in the given status,
// soonest first. Used by the doctor dashboard.
func ListAppointmentsByStatus(ctx context.Context, db *gorm.DB, status string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Order("scheduled_date asc").
		Find(&out).Error
	return out, err
}

// UpdateAppointmentStatus sets the status of an appointment. The caller must
// have validated the value against the legal set; this function only
// persists. Returns ErrNotFound when no row matches.
func UpdateAppointmentStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
