package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

func TestCreateLead_AssignsIDAndTimestamp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	lat := 48.85
	lead := &domain.Lead{
		Address:          "5 avenue Test, Lyon",
		Latitude:         &lat,
		EstimatedCostMin: 9000,
		EstimatedCostMax: 13000,
		ClientName:       "Jean Dupont",
		ClientEmail:      "jean@example.com",
	}
	if err := CreateLead(ctx, db, lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.ID == 0 {
		t.Errorf("lead id not assigned")
	}
	if lead.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}

	got, err := GetLead(ctx, db, lead.ID)
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if got.Address != lead.Address || got.EstimatedCostMax != 13000 {
		t.Errorf("round trip mismatch: %#v", got)
	}
	if got.Latitude == nil || *got.Latitude != 48.85 {
		t.Errorf("optional latitude lost: %v", got.Latitude)
	}
	if got.Longitude != nil {
		t.Errorf("absent longitude should stay nil")
	}
}

func TestGetLead_NotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := GetLead(context.Background(), db, 4242); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestListLeads_NewestFirstAndPaging(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		l := &domain.Lead{
			Address:          "addr",
			EstimatedCostMin: 1000 * (i + 1),
			EstimatedCostMax: 2000 * (i + 1),
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(l).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	all, err := ListLeads(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d", len(all))
	}
	if all[0].EstimatedCostMin != 4000 {
		t.Errorf("expected newest first, got min=%d", all[0].EstimatedCostMin)
	}

	total, err := CountLeads(ctx, db)
	if err != nil || total != 4 {
		t.Fatalf("count = %d, err=%v", total, err)
	}

	page, err := ListLeadsPage(ctx, db, 2, 2)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 2 || page[0].EstimatedCostMin != 2000 {
		t.Fatalf("page mismatch: %#v", page)
	}
}
