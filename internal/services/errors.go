// Package services defines the business logic for accounts, donations, blood
// requests, appointments, the information board, inventory, and chat. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Account errors.
var (
	// ErrUserNotFound indicates that the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering with a username that is
	// already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidRole is returned when a role is outside the allowed set.
	ErrInvalidRole = errors.New("invalid role")
)

// Chat errors.
var (
	// ErrRoomNotFound indicates that the requested chat room does not exist.
	ErrRoomNotFound = errors.New("chat room not found")

	// ErrNotParticipant is returned when a user tries to read or post in a
	// room they are not a member of.
	ErrNotParticipant = errors.New("not a participant of this room")

	// ErrSelfChat is returned when a user tries to open a direct conversation
	// with themselves.
	ErrSelfChat = errors.New("cannot start a conversation with yourself")

	// ErrEmptyMessage is returned when a message body is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a message exceeds the configured
	// maximum length.
	ErrMessageTooLong = errors.New("message too long")
)

// Medical record errors.
var (
	// ErrDonationNotFound indicates that the referenced donation does not exist.
	ErrDonationNotFound = errors.New("donation not found")

	// ErrRequestNotFound indicates that the referenced blood request does not
	// exist.
	ErrRequestNotFound = errors.New("blood request not found")

	// ErrAppointmentNotFound indicates that the referenced appointment does
	// not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrPostNotFound indicates that the referenced information post does not
	// exist or is not published.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidUrgency is returned when a blood request carries an urgency
	// outside the allowed set.
	ErrInvalidUrgency = errors.New("invalid urgency level")

	// ErrInvalidStatus is returned when an appointment status transition
	// targets a value outside the allowed set.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidCategory is returned when an information post category is
	// outside the allowed set.
	ErrInvalidCategory = errors.New("invalid post category")

	// ErrValidation is returned for field-level validation failures such as
	// blank required fields, non-positive quantities, or malformed dates.
	ErrValidation = errors.New("validation failed")
)
