// Package domain defines the persistence models for conversation sessions
// and leads. These types are mapped with GORM and form the core data layer
// of the roof estimation backend.
package domain

import "time"

// ConversationSession represents one in-progress or completed conversational
// estimation flow. A session is created from an address, accumulates one
// answer per question of the fixed sequence, and carries the latest refined
// cost estimate.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Address: the property address the estimate is for; immutable after creation.
//   - Latitude / Longitude: coordinates synthesized at creation (stand-in for
//     a real geocoding step).
//   - RoofAreaSqm: roof surface in m², synthesized at creation and never
//     changed afterwards.
//   - CurrentQuestionID: id of the next unanswered question; nil once the
//     sequence is exhausted.
//   - Answers: question-id → submitted answer, stored as a JSON text column.
//   - EstimatedCostMin / EstimatedCostMax: latest refined estimate in whole
//     euros; nil until the first answer is submitted.
//   - IsCompleted: true once every question has been answered.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ConversationSession struct {
	ID                string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	Address           string    `json:"address"             gorm:"type:text;not null"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	RoofAreaSqm       float64   `json:"roof_area_sqm"`
	CurrentQuestionID *string   `json:"current_question_id" gorm:"type:varchar(50)"`
	Answers           AnswerMap `json:"answers"             gorm:"type:text"`
	EstimatedCostMin  *int      `json:"estimated_cost_min"`
	EstimatedCostMax  *int      `json:"estimated_cost_max"`
	IsCompleted       bool      `json:"is_completed"        gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at"          gorm:"index"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name for ConversationSession.
func (ConversationSession) TableName() string { return "conversation_sessions" }

// Lead represents a persisted prospect: an address with a cost range and
// optional contact details. Leads are immutable once created; there is no
// update or delete path.
//
// The cost range is typically copied from a completed session's final
// estimate, but no foreign key ties the two records together.
type Lead struct {
	ID               uint      `json:"id"                 gorm:"primaryKey;autoIncrement"`
	Address          string    `json:"address"            gorm:"type:text;not null"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	RoofAreaSqm      *float64  `json:"roof_area_sqm,omitempty"`
	EstimatedCostMin int       `json:"estimated_cost_min" gorm:"not null"`
	EstimatedCostMax int       `json:"estimated_cost_max" gorm:"not null"`
	ClientName       string    `json:"client_name,omitempty"  gorm:"type:varchar(100)"`
	ClientEmail      string    `json:"client_email,omitempty" gorm:"type:varchar(120)"`
	ClientPhone      string    `json:"client_phone,omitempty" gorm:"type:varchar(20)"`
	CreatedAt        time.Time `json:"created_at"         gorm:"index"`
}

// TableName returns the database table name for Lead.
func (Lead) TableName() string { return "leads" }
