package domain

import (
	"strings"
	"testing"
)

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleDonor, RoleRecipient, RoleDoctor, RoleAdmin} {
		if !ValidRole(r) {
			t.Fatalf("expected %q to be a valid role", r)
		}
	}
	for _, r := range []string{"", "nurse", "Donor", "admin "} {
		if ValidRole(r) {
			t.Fatalf("expected %q to be rejected", r)
		}
	}
}

func TestValidUrgency(t *testing.T) {
	for _, u := range []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical} {
		if !ValidUrgency(u) {
			t.Fatalf("expected %q to be a valid urgency", u)
		}
	}
	if ValidUrgency("urgent") {
		t.Fatalf("expected unknown urgency to be rejected")
	}
}

func TestValidAppointmentStatus(t *testing.T) {
	for _, s := range []string{AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled} {
		if !ValidAppointmentStatus(s) {
			t.Fatalf("expected %q to be a valid status", s)
		}
	}
	// Values taken verbatim from a route path must not slip through.
	for _, s := range []string{"", "done", "CONFIRMED", "cancelled "} {
		if ValidAppointmentStatus(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{CategoryGeneral, CategoryDonation, CategoryHealth, CategoryEvent, CategoryResearch} {
		if !ValidCategory(c) {
			t.Fatalf("expected %q to be a valid category", c)
		}
	}
	if ValidCategory("news") {
		t.Fatalf("expected unknown category to be rejected")
	}
}

func TestInformationPost_Excerpt(t *testing.T) {
	short := InformationPost{Content: "short body"}
	if got := short.Excerpt(); got != "short body" {
		t.Fatalf("short excerpt mismatch: %q", got)
	}

	long := InformationPost{Content: strings.Repeat("x", 500)}
	if got := long.Excerpt(); len(got) != 180 {
		t.Fatalf("expected excerpt of 180 bytes, got %d", len(got))
	}
}

func TestInventoryRecord_IsCritical(t *testing.T) {
	cases := []struct {
		available, critical int
		want                bool
	}{
		{0, 10, true},
		{10, 10, true}, // boundary: at the threshold counts as critical
		{11, 10, false},
		{100, 10, false},
	}
	for _, tc := range cases {
		r := InventoryRecord{AvailableUnits: tc.available, CriticalLevel: tc.critical}
		if got := r.IsCritical(); got != tc.want {
			t.Fatalf("IsCritical(%d/%d) = %v, want %v", tc.available, tc.critical, got, tc.want)
		}
	}
}

func TestTableNames(t *testing.T) {
	if (User{}).TableName() != "users" ||
		(Donation{}).TableName() != "donations" ||
		(BloodRequest{}).TableName() != "blood_requests" ||
		(Appointment{}).TableName() != "appointments" ||
		(InformationPost{}).TableName() != "information_posts" ||
		(InventoryRecord{}).TableName() != "blood_inventory" ||
		(ChatRoom{}).TableName() != "chat_rooms" ||
		(Message{}).TableName() != "messages" {
		t.Fatalf("unexpected table name mapping")
	}
}
