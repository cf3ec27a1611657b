// Handler wiring for the public API.
//
// This file declares the service contracts consumed by the HTTP layer and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate input, call application services, and translate results (including
// service-level sentinel errors) into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/http/middleware"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// UserService defines account operations consumed by HTTP handlers.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in services.ProfileInput) (*domain.User, error)
	Verify(ctx context.Context, id string) (*domain.User, error)
	Directory(ctx context.Context, exceptID string) ([]domain.User, error)
}

// ChatService defines direct-conversation operations consumed by HTTP handlers.
type ChatService interface {
	StartDirect(ctx context.Context, userID, otherID string) (*domain.ChatRoom, bool, error)
	Send(ctx context.Context, userID, roomID, content string) (*domain.Message, error)
	SendDirect(ctx context.Context, userID, otherID, content string) (*domain.Message, *domain.ChatRoom, error)
	History(ctx context.Context, userID, roomID string) ([]domain.Message, error)
	RoomStats(ctx context.Context, userID, roomID string) (int64, *time.Time, error)
	Rooms(ctx context.Context, userID string) ([]domain.ChatRoom, error)
	Contacts(ctx context.Context, userID string) ([]domain.User, error)
}

// DonationService defines donation lifecycle operations.
type DonationService interface {
	Record(ctx context.Context, donorID string, in services.DonationInput) (*domain.Donation, error)
	History(ctx context.Context, donorID string) ([]domain.Donation, services.DonationSummary, error)
	Process(ctx context.Context, donationID string) (*domain.Donation, error)
	Queue(ctx context.Context) ([]domain.Donation, error)
}

// RequestService defines blood-request lifecycle operations.
type RequestService interface {
	Create(ctx context.Context, recipientID string, in services.RequestInput) (*domain.BloodRequest, error)
	History(ctx context.Context, recipientID string) ([]domain.BloodRequest, services.RequestSummary, error)
	Fulfill(ctx context.Context, requestID string) (*domain.BloodRequest, error)
	Queue(ctx context.Context) ([]domain.BloodRequest, error)
}

// AppointmentService defines appointment lifecycle operations.
type AppointmentService interface {
	Schedule(ctx context.Context, userID string, in services.AppointmentInput) (*domain.Appointment, error)
	Mine(ctx context.Context, userID string) ([]domain.Appointment, error)
	SetStatus(ctx context.Context, appointmentID, status string) (*domain.Appointment, error)
	ByStatus(ctx context.Context, status string) ([]domain.Appointment, error)
}

// PostService defines information-board operations.
type PostService interface {
	List(ctx context.Context, search, category string, page int) (*services.BoardPage, error)
	Get(ctx context.Context, id string) (*domain.InformationPost, error)
	Create(ctx context.Context, authorID string, in services.PostInput) (*domain.InformationPost, error)
	Update(ctx context.Context, id string, in services.PostInput) (*domain.InformationPost, error)
	Delete(ctx context.Context, id string) error
}

// InventoryService defines inventory ledger operations.
type InventoryService interface {
	List(ctx context.Context) ([]services.StockLevel, error)
	Set(ctx context.Context, in services.InventoryInput) (*services.StockLevel, error)
}

// DashboardService defines the aggregate dashboard views.
type DashboardService interface {
	Home(ctx context.Context) (*services.HomeDashboard, error)
	Doctor(ctx context.Context) (*services.DoctorDashboard, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the public API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc UserService
	chatSvc ChatService
	donSvc  DonationService
	reqSvc  RequestService
	apptSvc AppointmentService
	postSvc PostService
	invSvc  InventoryService
	dashSvc DashboardService
}

// New constructs a Handlers instance bound to the given services.
func New(
	userSvc UserService,
	chatSvc ChatService,
	donSvc DonationService,
	reqSvc RequestService,
	apptSvc AppointmentService,
	postSvc PostService,
	invSvc InventoryService,
	dashSvc DashboardService,
) *Handlers {
	return &Handlers{
		userSvc: userSvc,
		chatSvc: chatSvc,
		donSvc:  donSvc,
		reqSvc:  reqSvc,
		apptSvc: apptSvc,
		postSvc: postSvc,
		invSvc:  invSvc,
		dashSvc: dashSvc,
	}
}

// currentUser returns the account resolved by the identity middleware. Routes
// using it sit behind RequireUser/RequireRole, so a nil result is a wiring
// bug surfaced as 401 rather than a panic.
func currentUser(c *gin.Context) *domain.User {
	return middleware.UserFrom(c)
}

// failErr translates service-level sentinel errors into the standard error
// envelope, falling back to a 500 with the given code.
func failErr(c *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidUrgency),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrMessageTooLong),
		errors.Is(err, services.ErrSelfChat):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrNotParticipant):
		fail(c, http.StatusForbidden, ErrCodeNotParticipant, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrDonationNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrPostNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, fallbackCode, err.Error())
	}
}
