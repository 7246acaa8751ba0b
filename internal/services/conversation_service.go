// Package services – ConversationService
//
// This file implements the ConversationService, the application-level
// component that owns the scripted estimation dialogue. It creates sessions
// with synthesized roof data, records one answer per question, recomputes the
// refined estimate after every answer, and walks the session through the
// fixed question sequence to completion.
//
// Observability: the mutating methods are OpenTelemetry-instrumented; spans
// include the session identifier.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Nicolasb03/soumissiontoiture/internal/conversation"
	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
	"github.com/Nicolasb03/soumissiontoiture/internal/repo"
)

// ConversationService coordinates session persistence, the question
// sequence, and the refined-estimate calculator.
type ConversationService struct {
	DB      *gorm.DB
	Seq     *conversation.Sequence
	Sampler pricing.Sampler
}

// StartResult is returned when a new conversation session is created.
type StartResult struct {
	Session        *domain.ConversationSession
	Question       conversation.Question
	Progress       int
	TotalQuestions int
}

// FinalEstimation is the closing payload of a completed conversation.
type FinalEstimation struct {
	Address             string           `json:"address"`
	RoofAreaSqm         float64          `json:"roof_area_sqm"`
	EstimatedCostMin    int              `json:"estimated_cost_min"`
	EstimatedCostMax    int              `json:"estimated_cost_max"`
	ConversationSummary domain.AnswerMap `json:"conversation_summary"`
}

// AnswerResult is returned by SubmitAnswer: either the next question with an
// intermediate estimate, or the final estimation when the sequence is done.
type AnswerResult struct {
	SessionID      string
	Completed      bool
	NextQuestion   *conversation.Question
	Progress       int
	TotalQuestions int
	CostMin        int
	CostMax        int
	Final          *FinalEstimation
}

// Start creates a new session for the given address. The roof area and
// coordinates are synthesized through the configured Sampler (a stand-in for
// real geocoding/measurement); the state starts at the first question. No
// estimate is computed until the first answer arrives.
func (s *ConversationService) Start(ctx context.Context, address string) (*StartResult, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Start")
	defer span.End()

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	sample := s.Sampler.Sample()
	first := s.Seq.First()

	sess, err := repo.CreateSession(ctx, s.DB, address, sample.Latitude, sample.Longitude, sample.AreaSqm, first.ID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("session.id", sess.ID))

	return &StartResult{
		Session:        sess,
		Question:       first,
		Progress:       1,
		TotalQuestions: s.Seq.Total(),
	}, nil
}

// SubmitAnswer records an answer for the session's current question,
// recomputes the refined estimate, and advances the state machine. The
// session row is updated in a single transaction: on any failure nothing is
// committed.
//
// The terminal state is absorbing: answering a completed session mutates
// nothing and idempotently re-returns the recorded final estimation.
func (s *ConversationService) SubmitAnswer(ctx context.Context, sessionID string, answer domain.AnswerValue) (*AnswerResult, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "SubmitAnswer",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionNotFound
	}
	if answer.IsZero() {
		return nil, ErrEmptyAnswer
	}

	sess, err := repo.GetSession(ctx, s.DB, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if sess.IsCompleted || sess.CurrentQuestionID == nil {
		return s.finalResult(sess), nil
	}

	currentID := *sess.CurrentQuestionID
	if sess.Answers == nil {
		sess.Answers = domain.AnswerMap{}
	}
	sess.Answers[currentID] = answer

	costMin, costMax := pricing.RefinedEstimate(sess.RoofAreaSqm, sess.Answers)
	sess.EstimatedCostMin = &costMin
	sess.EstimatedCostMax = &costMax

	next := conversation.Advance(s.Seq, conversation.State(currentID))
	if next.IsTerminal() {
		sess.CurrentQuestionID = nil
		sess.IsCompleted = true
	} else {
		qid := next.QuestionID()
		sess.CurrentQuestionID = &qid
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.SaveSession(ctx, tx, sess)
	})
	if err != nil {
		return nil, err
	}

	if sess.IsCompleted {
		return s.finalResult(sess), nil
	}

	q, _ := s.Seq.Get(next.QuestionID())
	return &AnswerResult{
		SessionID:      sess.ID,
		NextQuestion:   &q,
		Progress:       s.progress(sess),
		TotalQuestions: s.Seq.Total(),
		CostMin:        costMin,
		CostMax:        costMax,
	}, nil
}

// Get returns the full session snapshot.
func (s *ConversationService) Get(ctx context.Context, id string) (*domain.ConversationSession, error) {
	sess, err := repo.GetSession(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// List returns all sessions, newest first.
func (s *ConversationService) List(ctx context.Context) ([]domain.ConversationSession, error) {
	return repo.ListSessions(ctx, s.DB)
}

// ListPage returns a page of sessions (newest first) and the total count.
func (s *ConversationService) ListPage(ctx context.Context, page, pageSize int) ([]domain.ConversationSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountSessions(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ConversationSession{}, 0, nil
	}

	items, err := repo.ListSessionsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// finalResult builds the completed-conversation payload from the stored
// session fields.
func (s *ConversationService) finalResult(sess *domain.ConversationSession) *AnswerResult {
	costMin, costMax := 0, 0
	if sess.EstimatedCostMin != nil {
		costMin = *sess.EstimatedCostMin
	}
	if sess.EstimatedCostMax != nil {
		costMax = *sess.EstimatedCostMax
	}
	return &AnswerResult{
		SessionID:      sess.ID,
		Completed:      true,
		Progress:       s.Seq.Total(),
		TotalQuestions: s.Seq.Total(),
		CostMin:        costMin,
		CostMax:        costMax,
		Final: &FinalEstimation{
			Address:             sess.Address,
			RoofAreaSqm:         sess.RoofAreaSqm,
			EstimatedCostMin:    costMin,
			EstimatedCostMax:    costMax,
			ConversationSummary: sess.Answers,
		},
	}
}

// progress counts answered questions plus one for the question on screen.
func (s *ConversationService) progress(sess *domain.ConversationSession) int {
	answered := make(map[string]struct{}, len(sess.Answers))
	for id := range sess.Answers {
		answered[id] = struct{}{}
	}
	return conversation.Progress(s.Seq, answered)
}
