package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

func TestCreateSession_SetsDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s, err := CreateSession(ctx, db, "1 rue Test, Paris", 48.85, 2.35, 120, "roof_type")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("session id is not a UUID: %q", s.ID)
	}
	if s.CurrentQuestionID == nil || *s.CurrentQuestionID != "roof_type" {
		t.Errorf("current question = %v", s.CurrentQuestionID)
	}
	if s.Answers == nil || len(s.Answers) != 0 {
		t.Errorf("answers should start empty: %#v", s.Answers)
	}
	if s.IsCompleted {
		t.Errorf("new session must not be completed")
	}
	if s.EstimatedCostMin != nil || s.EstimatedCostMax != nil {
		t.Errorf("new session must have no estimate")
	}
	if s.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}
}

func TestGetSession_RoundTripAndNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := CreateSession(ctx, db, "2 rue Test", 48.8, 2.3, 95, "roof_type")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := GetSession(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Address != "2 rue Test" || got.RoofAreaSqm != 95 {
		t.Errorf("round trip mismatch: %#v", got)
	}

	if _, err := GetSession(ctx, db, uuid.NewString()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing session error = %v, want gorm.ErrRecordNotFound", err)
	}
	if !errors.Is(ErrNotFound, gorm.ErrRecordNotFound) {
		t.Fatalf("ErrNotFound must alias gorm.ErrRecordNotFound")
	}
}

func TestSaveSession_PersistsAnswersAndEstimate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s, err := CreateSession(ctx, db, "3 rue Test", 48.8, 2.3, 110, "roof_type")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s.Answers["roof_type"] = domain.Answer("zinc")
	s.Answers["roof_elements"] = domain.AnswerList("cheminee")
	min, max := 7000, 12000
	s.EstimatedCostMin, s.EstimatedCostMax = &min, &max
	next := "roof_condition"
	s.CurrentQuestionID = &next

	if err := SaveSession(ctx, db, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := GetSession(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answers["roof_type"].Choice != "zinc" {
		t.Errorf("answers lost: %#v", got.Answers)
	}
	if el := got.Answers["roof_elements"]; !el.Multi || el.Choices[0] != "cheminee" {
		t.Errorf("multi answer lost: %#v", el)
	}
	if got.EstimatedCostMin == nil || *got.EstimatedCostMin != 7000 {
		t.Errorf("estimate min lost: %v", got.EstimatedCostMin)
	}
	if got.CurrentQuestionID == nil || *got.CurrentQuestionID != "roof_condition" {
		t.Errorf("current question lost: %v", got.CurrentQuestionID)
	}
}

func TestListSessions_NewestFirstAndPaging(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Seed with explicit timestamps so ordering is deterministic.
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		s := &domain.ConversationSession{
			ID:        uuid.NewString(),
			Address:   "addr",
			Answers:   domain.AnswerMap{},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	all, err := ListSessions(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	if !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Errorf("expected newest first: %v vs %v", all[0].CreatedAt, all[2].CreatedAt)
	}

	total, err := CountSessions(ctx, db)
	if err != nil || total != 3 {
		t.Fatalf("count = %d, err=%v", total, err)
	}

	page, err := ListSessionsPage(ctx, db, 1, 1)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 1 || !page[0].CreatedAt.Equal(all[1].CreatedAt) {
		t.Fatalf("page content mismatch")
	}
}
