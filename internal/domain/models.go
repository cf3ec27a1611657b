// Package domain defines the persistence models for the blood-bank
// application: user accounts, donations, blood requests, appointments,
// information posts, the inventory ledger, and the chat subsystem. These
// types are mapped with GORM and form the core data layer.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Every account carries exactly one role which gates the
// operations it may perform.
const (
	RoleDonor     = "donor"
	RoleRecipient = "recipient"
	RoleDoctor    = "doctor"
	RoleAdmin     = "admin"
)

// ValidRole reports whether r is one of the four known user roles.
func ValidRole(r string) bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the user directory. Accounts are created at
// signup, mutated by profile edits, and never hard-deleted (soft delete only).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: unique handle used across the application.
//   - Role: one of donor/recipient/doctor/admin (enforced by DB constraint).
//   - BloodGroup: ABO/Rh classification string (e.g. "O+"), optional.
//   - IsVerified: set by an administrator after identity checks.
type User struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	Username    string         `json:"username"     gorm:"type:varchar(150);not null;uniqueIndex"`
	Email       string         `json:"email"        gorm:"type:varchar(254)"`
	Role        string         `json:"role"         gorm:"type:varchar(20);not null;default:'donor';check:role IN ('donor','recipient','doctor','admin')"`
	PhoneNumber string         `json:"phone_number" gorm:"type:varchar(15)"`
	BloodGroup  string         `json:"blood_group"  gorm:"type:varchar(5)"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	Address     string         `json:"address"      gorm:"type:text"`
	City        string         `json:"city"         gorm:"type:varchar(100)"`
	IsVerified  bool           `json:"is_verified"  gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Donation records a single blood donation by a donor. The processed flag is
// one-way: a doctor marks a donation processed exactly once and it never
// reverts.
type Donation struct {
	ID              string     `json:"id"               gorm:"type:char(36);primaryKey"`
	DonorID         string     `json:"donor_id"         gorm:"type:char(36);not null;index:idx_donor_donations"`
	DonationDate    time.Time  `json:"donation_date"    gorm:"not null"`
	BloodGroup      string     `json:"blood_group"      gorm:"type:varchar(5);not null"`
	QuantityML      int        `json:"quantity_ml"      gorm:"not null"`
	HemoglobinLevel float64    `json:"hemoglobin_level"`
	BloodPressure   string     `json:"blood_pressure"   gorm:"type:varchar(20)"`
	IsProcessed     bool       `json:"is_processed"     gorm:"not null;default:false"`
	ProcessedDate   *time.Time `json:"processed_date,omitempty"`
	Notes           string     `json:"notes"            gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`

	// Donor is the owning account. Donations are cascade-deleted with it.
	Donor User `json:"-" gorm:"foreignKey:DonorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Donation.
func (Donation) TableName() string { return "donations" }

// Urgency levels on a blood request. Triage priority is display-only; no
// scheduling algorithm consumes it.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// ValidUrgency reports whether u is one of the known urgency levels.
func ValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// BloodRequest records a recipient's need for blood units. The fulfilled
// flag is one-way, set by a doctor's fulfill action.
type BloodRequest struct {
	ID               string     `json:"id"                gorm:"type:char(36);primaryKey"`
	RecipientID      string     `json:"recipient_id"      gorm:"type:char(36);not null;index:idx_recipient_requests"`
	BloodGroup       string     `json:"blood_group"       gorm:"type:varchar(5);not null"`
	UnitsRequired    int        `json:"units_required"    gorm:"not null"`
	Urgency          string     `json:"urgency"           gorm:"type:varchar(20);not null;check:urgency IN ('low','medium','high','critical')"`
	HospitalName     string     `json:"hospital_name"     gorm:"type:varchar(200);not null"`
	HospitalAddress  string     `json:"hospital_address"  gorm:"type:text"`
	RequiredDate     time.Time  `json:"required_date"     gorm:"not null"`
	PatientName      string     `json:"patient_name"      gorm:"type:varchar(200);not null"`
	PatientAge       int        `json:"patient_age"       gorm:"not null"`
	MedicalCondition string     `json:"medical_condition" gorm:"type:text"`
	IsFulfilled      bool       `json:"is_fulfilled"      gorm:"not null;default:false"`
	FulfilledDate    *time.Time `json:"fulfilled_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	Recipient User `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for BloodRequest.
func (BloodRequest) TableName() string { return "blood_requests" }

// Appointment statuses. Transitions are triggered only by doctor action and
// any legal status may replace any other; values outside this set are
// rejected before persisting.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// ValidAppointmentStatus reports whether s is one of the four legal statuses.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a scheduling record owned by a donor.
type Appointment struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	UserID          string    `json:"user_id"          gorm:"type:char(36);not null;index:idx_user_appointments"`
	AppointmentType string    `json:"appointment_type" gorm:"type:varchar(50);not null"`
	ScheduledDate   time.Time `json:"scheduled_date"   gorm:"not null"`
	Status          string    `json:"status"           gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','confirmed','completed','cancelled')"`
	Notes           string    `json:"notes"            gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Appointment.
func (Appointment) TableName() string { return "appointments" }

// Information post categories.
const (
	CategoryGeneral  = "general"
	CategoryDonation = "donation"
	CategoryHealth   = "health"
	CategoryEvent    = "event"
	CategoryResearch = "research"
)

// ValidCategory reports whether c is one of the known post categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGeneral, CategoryDonation, CategoryHealth, CategoryEvent, CategoryResearch:
		return true
	}
	return false
}

// excerptLen caps the number of bytes returned by InformationPost.Excerpt.
const excerptLen = 180

// InformationPost is a publishable article on the information board,
// authored by a doctor or administrator.
type InformationPost struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title"        gorm:"type:varchar(200);not null"`
	Content     string         `json:"content"      gorm:"type:text;not null"`
	Category    string         `json:"category"     gorm:"type:varchar(50);not null;check:category IN ('general','donation','health','event','research')"`
	AuthorID    string         `json:"author_id"    gorm:"type:char(36);not null;index"`
	IsPublished bool           `json:"is_published" gorm:"not null"`
	IsFeatured  bool           `json:"is_featured"  gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for InformationPost.
func (InformationPost) TableName() string { return "information_posts" }

// Excerpt returns the leading portion of the post content for list views.
func (p InformationPost) Excerpt() string {
	if len(p.Content) <= excerptLen {
		return p.Content
	}
	return p.Content[:excerptLen]
}

// InventoryRecord tracks available units per blood group. Exactly one row
// exists per unique group.
type InventoryRecord struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	BloodGroup     string    `json:"blood_group"     gorm:"type:varchar(5);not null;uniqueIndex"`
	AvailableUnits int       `json:"available_units" gorm:"not null;default:0"`
	CriticalLevel  int       `json:"critical_level"  gorm:"not null"`
	LastUpdated    time.Time `json:"last_updated"`
}

// TableName returns the database table name for InventoryRecord.
func (InventoryRecord) TableName() string { return "blood_inventory" }

// IsCritical reports whether the group's stock is at or below its critical
// threshold.
func (r InventoryRecord) IsCritical() bool {
	return r.AvailableUnits <= r.CriticalLevel
}

// ChatRoom is a conversation between a set of participant users.
//
// Direct (non-group) rooms carry a canonical PairKey — the two participant
// IDs sorted lexicographically and joined with ':' — under a unique index.
// The key makes get-or-create atomic: two concurrent starters for the same
// pair cannot both insert, so exactly one direct room exists per pair.
// Group rooms leave PairKey NULL.
type ChatRoom struct {
	ID           string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"       gorm:"type:varchar(255);not null;uniqueIndex"`
	IsGroup      bool      `json:"is_group"   gorm:"not null;default:false"`
	PairKey      *string   `json:"-"          gorm:"type:varchar(80);uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	Participants []User    `json:"participants,omitempty" gorm:"many2many:chat_room_participants;"`
}

// TableName returns the database table name for ChatRoom.
func (ChatRoom) TableName() string { return "chat_rooms" }

// Message is a single utterance within a chat room, authored by a sender who
// must be a room participant at send time (enforced by the service-level
// access check, not a database constraint). Messages are ordered by
// timestamp ascending with ID as tiebreak.
//
// IsRead is persisted for schema fidelity but no flow currently reads it.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	RoomID    string    `json:"room_id"   gorm:"type:char(36);not null;index:idx_room_messages,priority:1"`
	SenderID  string    `json:"sender_id" gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_room_messages,priority:2"`
	IsRead    bool      `json:"is_read"   gorm:"not null;default:false"`

	// Room is the parent conversation. Messages are cascade-deleted with it.
	Room   ChatRoom `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Sender User     `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }
