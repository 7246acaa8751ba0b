// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Lead model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

// CreateLead inserts a new lead row. The numeric ID is assigned by the
// database; CreatedAt is set to UTC. Leads are never updated or deleted.
func CreateLead(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	lead.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(lead).Error
}

// GetLead fetches a lead by its numeric ID, or gorm.ErrRecordNotFound.
func GetLead(ctx context.Context, db *gorm.DB, id uint) (*domain.Lead, error) {
	var l domain.Lead
	if err := db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeads returns all leads ordered by creation time descending.
func ListLeads(ctx context.Context, db *gorm.DB) ([]domain.Lead, error) {
	var out []domain.Lead
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountLeads returns the total number of leads.
func CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Lead{}).
		Count(&total).Error
	return total, err
}

// ListLeadsPage returns a paginated slice of leads ordered newest first.
func ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	var out []domain.Lead
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
