package repo

import (
	"context"
	"testing"
	"time"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

func TestCreateDonation_SetsFields(t *testing.T) {
	db := newTestDB(t, &domain.User{}, &domain.Donation{})

	d, err := CreateDonation(context.Background(), db, &domain.Donation{
		DonorID:      "d1",
		DonationDate: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		BloodGroup:   "O+",
		QuantityML:   450,
	})
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	if d.ID == "" || d.IsProcessed || d.ProcessedDate != nil {
		t.Fatalf("unexpected donation fields: %+v", d)
	}

	var got domain.Donation
	if err := db.First(&got, "id = ?", d.ID).Error; err != nil {
		t.Fatalf("load created donation: %v", err)
	}
	if got.BloodGroup != "O+" || got.QuantityML != 450 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestListDonationsByDonor_OrderAndFilter(t *testing.T) {
	db := newTestDB(t, &domain.User{}, &domain.Donation{})

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	seed := []domain.Donation{
		{ID: "old", DonorID: "d1", DonationDate: base, BloodGroup: "A+", QuantityML: 450},
		{ID: "new", DonorID: "d1", DonationDate: base.AddDate(0, 2, 0), BloodGroup: "A+", QuantityML: 400},
		{ID: "other", DonorID: "d2", DonationDate: base, BloodGroup: "B-", QuantityML: 450},
	}
	for _, d := range seed {
		if err := db.Create(&d).Error; err != nil {
			t.Fatalf("seed %s: %v", d.ID, err)
		}
	}

	list, err := ListDonationsByDonor(context.Background(), db, "d1")
	if err != nil {
		t.Fatalf("ListDonationsByDonor: %v", err)
	}
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("unexpected list: %#v", list)
	}

	total, err := CountDonationsByDonor(context.Background(), db, "d1")
	if err != nil || total != 2 {
		t.Fatalf("CountDonationsByDonor = %d, %v", total, err)
	}
}

func TestMarkDonationProcessed_OneWay(t *testing.T) {
	db := newTestDB(t, &domain.User{}, &domain.Donation{})

	d := domain.Donation{ID: "d", DonorID: "u", DonationDate: time.Now().UTC(), BloodGroup: "O-", QuantityML: 450}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	changed, err := MarkDonationProcessed(context.Background(), db, "d", at)
	if err != nil {
		t.Fatalf("first process: %v", err)
	}
	if !changed {
		t.Fatalf("expected first call to flip the flag")
	}

	var got domain.Donation
	if err := db.First(&got, "id = ?", "d").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsProcessed || got.ProcessedDate == nil || !got.ProcessedDate.Equal(at) {
		t.Fatalf("unexpected state after process: %+v", got)
	}

	// Second call affects zero rows and leaves the original timestamp intact.
	changed, err = MarkDonationProcessed(context.Background(), db, "d", at.Add(time.Hour))
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	if changed {
		t.Fatalf("processed flag must be one-way")
	}
	if err := db.First(&got, "id = ?", "d").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.ProcessedDate.Equal(at) {
		t.Fatalf("timestamp must not move on repeat call: %v", got.ProcessedDate)
	}
}

func TestListUnprocessedDonations_OldestFirst(t *testing.T) {
	db := newTestDB(t, &domain.User{}, &domain.Donation{})

	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	proc := base.Add(time.Hour)
	seed := []domain.Donation{
		{ID: "b", DonorID: "u", DonationDate: base.AddDate(0, 0, 2), BloodGroup: "O+", QuantityML: 450},
		{ID: "a", DonorID: "u", DonationDate: base, BloodGroup: "O+", QuantityML: 450},
		{ID: "done", DonorID: "u", DonationDate: base, BloodGroup: "O+", QuantityML: 450, IsProcessed: true, ProcessedDate: &proc},
	}
	for _, d := range seed {
		if err := db.Create(&d).Error; err != nil {
			t.Fatalf("seed %s: %v", d.ID, err)
		}
	}

	list, err := ListUnprocessedDonations(context.Background(), db)
	if err != nil {
		t.Fatalf("ListUnprocessedDonations: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("unexpected queue: %#v", list)
	}
}
