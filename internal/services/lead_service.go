// Package services – LeadService
//
// This file implements the LeadService, which records qualified prospects.
// It validates required fields (address and both ends of the cost range),
// normalizes contact details, and coordinates repository operations for
// creating, listing (with pagination), and fetching leads. Leads are
// immutable once written.
//
// Service-level errors (ErrEmptyAddress, ErrMissingCostRange,
// ErrLeadNotFound) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

// LeadRepo defines the repository contract required by LeadService.
// Implementations are responsible for persistence of lead records.
type LeadRepo interface {
	// CreateLead inserts a new lead row.
	CreateLead(ctx context.Context, db *gorm.DB, lead *domain.Lead) error

	// GetLead fetches a lead by its numeric id.
	GetLead(ctx context.Context, db *gorm.DB, id uint) (*domain.Lead, error)

	// ListLeads returns all leads, newest first (non-paginated).
	ListLeads(ctx context.Context, db *gorm.DB) ([]domain.Lead, error)

	// CountLeads returns the total number of leads for pagination.
	CountLeads(ctx context.Context, db *gorm.DB) (int64, error)

	// ListLeadsPage returns a page of leads, newest first.
	ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error)
}

// CreateLeadInput carries the fields of a lead-creation request. The cost
// range uses pointers so "absent" and "zero" stay distinguishable: a missing
// field is a validation error, an explicit 0 is not.
type CreateLeadInput struct {
	Address          string
	Latitude         *float64
	Longitude        *float64
	RoofAreaSqm      *float64
	EstimatedCostMin *int
	EstimatedCostMax *int
	ClientName       string
	ClientEmail      string
	ClientPhone      string
}

// LeadService provides lead-level operations.
type LeadService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the lead repository used by this service.
	Repo LeadRepo
}

// NewLeadService constructs a LeadService.
func NewLeadService(db *gorm.DB, r LeadRepo) *LeadService {
	return &LeadService{DB: db, Repo: r}
}

// Create validates the input and persists a new lead. Nothing is written
// when validation fails.
func (s *LeadService) Create(ctx context.Context, in CreateLeadInput) (*domain.Lead, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if in.EstimatedCostMin == nil || in.EstimatedCostMax == nil {
		return nil, ErrMissingCostRange
	}

	lead := &domain.Lead{
		Address:          address,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		RoofAreaSqm:      in.RoofAreaSqm,
		EstimatedCostMin: *in.EstimatedCostMin,
		EstimatedCostMax: *in.EstimatedCostMax,
		ClientName:       strings.TrimSpace(in.ClientName),
		ClientEmail:      strings.TrimSpace(in.ClientEmail),
		ClientPhone:      strings.TrimSpace(in.ClientPhone),
	}
	if err := s.Repo.CreateLead(ctx, s.DB, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Get fetches a lead by id, translating missing rows to ErrLeadNotFound.
func (s *LeadService) Get(ctx context.Context, id uint) (*domain.Lead, error) {
	lead, err := s.Repo.GetLead(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// List returns all leads, newest first.
// Prefer ListPage for scalability on large datasets.
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.Repo.ListLeads(ctx, s.DB)
}

// ListPage returns a page of leads and the total count. It applies defaults
// for invalid page/pageSize.
func (s *LeadService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountLeads(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Lead{}, 0, nil
	}

	items, err := s.Repo.ListLeadsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}
