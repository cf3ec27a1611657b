// Package services – AppointmentService
//
// This file implements AppointmentService, which schedules appointments and
// performs doctor-driven status changes. Status values come from a closed
// set; anything else is rejected before the database sees it.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// AppointmentInput carries the fields accepted when booking an appointment.
type AppointmentInput struct {
	AppointmentType string `json:"appointment_type"`
	ScheduledDate   string `json:"scheduled_date"`
	Notes           string `json:"notes"`
}

// AppointmentService provides appointment lifecycle operations.
type AppointmentService struct {
	DB *gorm.DB
}

// NewAppointmentService constructs an AppointmentService.
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{DB: db}
}

// Schedule books a new appointment for userID. New appointments always start
// in the pending status.
func (s *AppointmentService) Schedule(ctx context.Context, userID string, in AppointmentInput) (*domain.Appointment, error) {
	if err := requireNonBlank(
		field{"appointment_type", in.AppointmentType},
		field{"scheduled_date", in.ScheduledDate},
	); err != nil {
		return nil, err
	}
	when, err := parseDateTime(in.ScheduledDate)
	if err != nil {
		return nil, err
	}

	return repo.CreateAppointment(ctx, s.DB, &domain.Appointment{
		UserID:          userID,
		AppointmentType: in.AppointmentType,
		ScheduledDate:   when,
		Notes:           in.Notes,
	})
}

// Mine lists the caller's appointments, soonest first.
func (s *AppointmentService) Mine(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return repo.ListAppointmentsByUser(ctx, s.DB, userID)
}

// SetStatus moves an appointment to the given status on behalf of a doctor.
// Any legal status may replace any other; values outside the closed set are
// rejected with ErrInvalidStatus.
func (s *AppointmentService) SetStatus(ctx context.Context, appointmentID, status string) (*domain.Appointment, error) {
	if !domain.ValidAppointmentStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := repo.UpdateAppointmentStatus(ctx, s.DB, appointmentID, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return repo.GetAppointment(ctx, s.DB, appointmentID)
}

// ByStatus lists appointments currently in the given status, soonest first.
func (s *AppointmentService) ByStatus(ctx context.Context, status string) ([]domain.Appointment, error) {
	if !domain.ValidAppointmentStatus(status) {
		return nil, ErrInvalidStatus
	}
	return repo.ListAppointmentsByStatus(ctx, s.DB, status)
}
