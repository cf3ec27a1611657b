package handlers

// Shared stub services for handler tests. Each stub exposes optional function
// fields; unset fields return zero values so a test only wires what it checks.

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

type stubUserSvc struct {
	register  func(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	update    func(ctx context.Context, id string, in services.ProfileInput) (*domain.User, error)
	verify    func(ctx context.Context, id string) (*domain.User, error)
	directory func(ctx context.Context, exceptID string) ([]domain.User, error)
}

func (s stubUserSvc) Register(ctx context.Context, in services.RegisterInput) (*domain.User, error) {
	if s.register != nil {
		return s.register(ctx, in)
	}
	return nil, nil
}
func (s stubUserSvc) Get(context.Context, string) (*domain.User, error) { return nil, nil }
func (s stubUserSvc) UpdateProfile(ctx context.Context, id string, in services.ProfileInput) (*domain.User, error) {
	if s.update != nil {
		return s.update(ctx, id, in)
	}
	return nil, nil
}
func (s stubUserSvc) Verify(ctx context.Context, id string) (*domain.User, error) {
	if s.verify != nil {
		return s.verify(ctx, id)
	}
	return nil, nil
}
func (s stubUserSvc) Directory(ctx context.Context, exceptID string) ([]domain.User, error) {
	if s.directory != nil {
		return s.directory(ctx, exceptID)
	}
	return nil, nil
}

type stubChatSvc struct {
	startDirect func(ctx context.Context, userID, otherID string) (*domain.ChatRoom, bool, error)
	send        func(ctx context.Context, userID, roomID, content string) (*domain.Message, error)
	sendDirect  func(ctx context.Context, userID, otherID, content string) (*domain.Message, *domain.ChatRoom, error)
	history     func(ctx context.Context, userID, roomID string) ([]domain.Message, error)
	roomStats   func(ctx context.Context, userID, roomID string) (int64, *time.Time, error)
	rooms       func(ctx context.Context, userID string) ([]domain.ChatRoom, error)
	contacts    func(ctx context.Context, userID string) ([]domain.User, error)
}

func (s stubChatSvc) StartDirect(ctx context.Context, userID, otherID string) (*domain.ChatRoom, bool, error) {
	if s.startDirect != nil {
		return s.startDirect(ctx, userID, otherID)
	}
	return nil, false, nil
}
func (s stubChatSvc) Send(ctx context.Context, userID, roomID, content string) (*domain.Message, error) {
	if s.send != nil {
		return s.send(ctx, userID, roomID, content)
	}
	return nil, nil
}
func (s stubChatSvc) SendDirect(ctx context.Context, userID, otherID, content string) (*domain.Message, *domain.ChatRoom, error) {
	if s.sendDirect != nil {
		return s.sendDirect(ctx, userID, otherID, content)
	}
	return nil, nil, nil
}
func (s stubChatSvc) History(ctx context.Context, userID, roomID string) ([]domain.Message, error) {
	if s.history != nil {
		return s.history(ctx, userID, roomID)
	}
	return nil, nil
}
func (s stubChatSvc) RoomStats(ctx context.Context, userID, roomID string) (int64, *time.Time, error) {
	if s.roomStats != nil {
		return s.roomStats(ctx, userID, roomID)
	}
	return 0, nil, nil
}
func (s stubChatSvc) Rooms(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	if s.rooms != nil {
		return s.rooms(ctx, userID)
	}
	return nil, nil
}
func (s stubChatSvc) Contacts(ctx context.Context, userID string) ([]domain.User, error) {
	if s.contacts != nil {
		return s.contacts(ctx, userID)
	}
	return nil, nil
}

type stubDonationSvc struct {
	record  func(ctx context.Context, donorID string, in services.DonationInput) (*domain.Donation, error)
	history func(ctx context.Context, donorID string) ([]domain.Donation, services.DonationSummary, error)
	process func(ctx context.Context, donationID string) (*domain.Donation, error)
}

func (s stubDonationSvc) Record(ctx context.Context, donorID string, in services.DonationInput) (*domain.Donation, error) {
	if s.record != nil {
		return s.record(ctx, donorID, in)
	}
	return nil, nil
}
func (s stubDonationSvc) History(ctx context.Context, donorID string) ([]domain.Donation, services.DonationSummary, error) {
	if s.history != nil {
		return s.history(ctx, donorID)
	}
	return nil, services.DonationSummary{}, nil
}
func (s stubDonationSvc) Process(ctx context.Context, donationID string) (*domain.Donation, error) {
	if s.process != nil {
		return s.process(ctx, donationID)
	}
	return nil, nil
}
func (s stubDonationSvc) Queue(context.Context) ([]domain.Donation, error) { return nil, nil }

type stubRequestSvc struct {
	create  func(ctx context.Context, recipientID string, in services.RequestInput) (*domain.BloodRequest, error)
	fulfill func(ctx context.Context, requestID string) (*domain.BloodRequest, error)
}

func (s stubRequestSvc) Create(ctx context.Context, recipientID string, in services.RequestInput) (*domain.BloodRequest, error) {
	if s.create != nil {
		return s.create(ctx, recipientID, in)
	}
	return nil, nil
}
func (s stubRequestSvc) History(context.Context, string) ([]domain.BloodRequest, services.RequestSummary, error) {
	return nil, services.RequestSummary{}, nil
}
func (s stubRequestSvc) Fulfill(ctx context.Context, requestID string) (*domain.BloodRequest, error) {
	if s.fulfill != nil {
		return s.fulfill(ctx, requestID)
	}
	return nil, nil
}
func (s stubRequestSvc) Queue(context.Context) ([]domain.BloodRequest, error) { return nil, nil }

type stubAppointmentSvc struct {
	schedule  func(ctx context.Context, userID string, in services.AppointmentInput) (*domain.Appointment, error)
	setStatus func(ctx context.Context, appointmentID, status string) (*domain.Appointment, error)
}

func (s stubAppointmentSvc) Schedule(ctx context.Context, userID string, in services.AppointmentInput) (*domain.Appointment, error) {
	if s.schedule != nil {
		return s.schedule(ctx, userID, in)
	}
	return nil, nil
}
func (s stubAppointmentSvc) Mine(context.Context, string) ([]domain.Appointment, error) {
	return nil, nil
}
func (s stubAppointmentSvc) SetStatus(ctx context.Context, appointmentID, status string) (*domain.Appointment, error) {
	if s.setStatus != nil {
		return s.setStatus(ctx, appointmentID, status)
	}
	return nil, nil
}
func (s stubAppointmentSvc) ByStatus(context.Context, string) ([]domain.Appointment, error) {
	return nil, nil
}

type stubPostSvc struct {
	list   func(ctx context.Context, search, category string, page int) (*services.BoardPage, error)
	get    func(ctx context.Context, id string) (*domain.InformationPost, error)
	create func(ctx context.Context, authorID string, in services.PostInput) (*domain.InformationPost, error)
	delete func(ctx context.Context, id string) error
}

func (s stubPostSvc) List(ctx context.Context, search, category string, page int) (*services.BoardPage, error) {
	if s.list != nil {
		return s.list(ctx, search, category, page)
	}
	return &services.BoardPage{}, nil
}
func (s stubPostSvc) Get(ctx context.Context, id string) (*domain.InformationPost, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, nil
}
func (s stubPostSvc) Create(ctx context.Context, authorID string, in services.PostInput) (*domain.InformationPost, error) {
	if s.create != nil {
		return s.create(ctx, authorID, in)
	}
	return nil, nil
}
func (s stubPostSvc) Update(context.Context, string, services.PostInput) (*domain.InformationPost, error) {
	return nil, nil
}
func (s stubPostSvc) Delete(ctx context.Context, id string) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubInventorySvc struct {
	list func(ctx context.Context) ([]services.StockLevel, error)
	set  func(ctx context.Context, in services.InventoryInput) (*services.StockLevel, error)
}

func (s stubInventorySvc) List(ctx context.Context) ([]services.StockLevel, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}
func (s stubInventorySvc) Set(ctx context.Context, in services.InventoryInput) (*services.StockLevel, error) {
	if s.set != nil {
		return s.set(ctx, in)
	}
	return nil, nil
}

type stubDashboardSvc struct {
	home   func(ctx context.Context) (*services.HomeDashboard, error)
	doctor func(ctx context.Context) (*services.DoctorDashboard, error)
}

func (s stubDashboardSvc) Home(ctx context.Context) (*services.HomeDashboard, error) {
	if s.home != nil {
		return s.home(ctx)
	}
	return &services.HomeDashboard{}, nil
}
func (s stubDashboardSvc) Doctor(ctx context.Context) (*services.DoctorDashboard, error) {
	if s.doctor != nil {
		return s.doctor(ctx)
	}
	return &services.DoctorDashboard{}, nil
}

// testHandlers wires a Handlers with the given stubs, defaulting the rest.
type testDeps struct {
	user UserService
	chat ChatService
	don  DonationService
	req  RequestService
	appt AppointmentService
	post PostService
	inv  InventoryService
	dash DashboardService
}

func newTestHandlers(d testDeps) *Handlers {
	if d.user == nil {
		d.user = stubUserSvc{}
	}
	if d.chat == nil {
		d.chat = stubChatSvc{}
	}
	if d.don == nil {
		d.don = stubDonationSvc{}
	}
	if d.req == nil {
		d.req = stubRequestSvc{}
	}
	if d.appt == nil {
		d.appt = stubAppointmentSvc{}
	}
	if d.post == nil {
		d.post = stubPostSvc{}
	}
	if d.inv == nil {
		d.inv = stubInventorySvc{}
	}
	if d.dash == nil {
		d.dash = stubDashboardSvc{}
	}
	return New(d.user, d.chat, d.don, d.req, d.appt, d.post, d.inv, d.dash)
}

// asUser injects an already-resolved account the way the identity middleware
// would, so handlers relying on currentUser see a caller.
func asUser(u *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", u)
		c.Set("userID", u.ID)
		c.Next()
	}
}
