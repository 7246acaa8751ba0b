// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ConversationSession model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a session is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSession inserts a new conversation session row. The session ID is a
// randomly generated UUID, CreatedAt is set to UTC, and the answer map starts
// empty. The caller supplies the synthesized roof data and the id of the
// first question.
func CreateSession(ctx context.Context, db *gorm.DB, address string, lat, lng, areaSqm float64, firstQuestionID string) (*domain.ConversationSession, error) {
	qid := firstQuestionID
	s := &domain.ConversationSession{
		ID:                uuid.NewString(),
		Address:           address,
		Latitude:          lat,
		Longitude:         lng,
		RoofAreaSqm:       areaSqm,
		CurrentQuestionID: &qid,
		Answers:           domain.AnswerMap{},
		CreatedAt:         time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a session by its ID, or ErrNotFound if missing.
func GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.ConversationSession, error) {
	var s domain.ConversationSession
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession persists all mutable fields of an existing session in one
// write. Used by the conversation engine after recording an answer.
func SaveSession(ctx context.Context, db *gorm.DB, s *domain.ConversationSession) error {
	return db.WithContext(ctx).Save(s).Error
}

// ListSessions returns all sessions ordered by creation time descending
// (most recent first).
func ListSessions(ctx context.Context, db *gorm.DB) ([]domain.ConversationSession, error) {
	var out []domain.ConversationSession
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountSessions returns the total number of sessions.
func CountSessions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ConversationSession{}).
		Count(&total).Error
	return total, err
}

// ListSessionsPage returns a paginated slice of sessions ordered newest
// first. The caller computes offset and limit (e.g. (page-1)*pageSize).
func ListSessionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ConversationSession, error) {
	var out []domain.ConversationSession
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
