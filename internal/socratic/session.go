// Package socratic runs a premise/conclusion dialogue: premises are screened
// for soundness and ethics before being accepted, and conclusions are judged
// against the accepted premises.
package socratic

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draiml/draiml/internal/ethics"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/logic"
	"github.com/draiml/draiml/internal/model"
)

const minPremiseLen = 3

// Rejection reasons.
const (
	ReasonTooShort = "Invalid premise format"
	ReasonUnsound  = "Premise is not logically sound"
	ReasonEthics   = "Medical validation failed"
)

// NoPremisesMessage is the final text of a conclusion drawn with no premises.
const NoPremisesMessage = "No premises available for reasoning."

// Rejection records a premise that was not accepted.
type Rejection struct {
	Premise string    `json:"premise"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"at"`
}

// Conclusion is the outcome of Conclude.
type Conclusion struct {
	Statement  string                  `json:"conclusion"`
	Premises   []string                `json:"premises"`
	Verdict    logic.Verdict           `json:"logical"`
	Validation *model.ValidationResult `json:"medical,omitempty"`
	FinalText  string                  `json:"final_text"`
	Timestamp  time.Time               `json:"timestamp"`
}

// Session holds the accepted premises of one dialogue. It is safe for
// concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	validator *logic.Validator
	evaluator *ethics.Evaluator
	logger    logging.Logger

	mu          sync.Mutex
	premises    []string
	rejected    []Rejection
	conclusions []Conclusion
}

// NewSession starts an empty session.
func NewSession(v *logic.Validator, e *ethics.Evaluator, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewStdoutLogger("socratic")
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		validator: v,
		evaluator: e,
		logger:    logger.With(logging.Field{Key: "session_id", Value: id}),
	}
}

// AddPremise screens premise and appends it when accepted. It returns false
// for rejected premises and for premises already held.
func (s *Session) AddPremise(ctx context.Context, premise string) bool {
	switch {
	case len(strings.TrimSpace(premise)) < minPremiseLen:
		s.reject(premise, ReasonTooShort)
		return false
	case !s.validator.IsSound(premise):
		s.reject(premise, ReasonUnsound)
		return false
	}

	res := s.evaluator.ValidateResponse(ctx, premise, map[string]any{"context": "premise_validation"}, "")
	if !res.IsValid {
		s.reject(premise, ReasonEthics)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.premises, premise) {
		return false
	}
	s.premises = append(s.premises, premise)
	s.logger.Info("premise added", logging.Field{Key: "count", Value: len(s.premises)})
	return true
}

func (s *Session) reject(premise, reason string) {
	s.mu.Lock()
	s.rejected = append(s.rejected, Rejection{Premise: premise, Reason: reason, At: time.Now().UTC()})
	s.mu.Unlock()
	s.logger.Warn("premise rejected",
		logging.Field{Key: "reason", Value: reason},
		logging.Field{Key: "premise", Value: premise})
}

// Premises returns the accepted premises in order.
func (s *Session) Premises() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.premises...)
}

// Rejected returns the rejected premises in order.
func (s *Session) Rejected() []Rejection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Rejection{}, s.rejected...)
}

// Conclusions returns every conclusion drawn so far.
func (s *Session) Conclusions() []Conclusion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Conclusion{}, s.conclusions...)
}

// Conclude judges conclusion against the current premises. The final text
// is the framed response when medical validation fails.
func (s *Session) Conclude(ctx context.Context, conclusion string) *Conclusion {
	premises := s.Premises()
	c := &Conclusion{
		Statement: conclusion,
		Premises:  premises,
		Verdict:   s.validator.ValidateConclusion(conclusion, premises),
		FinalText: conclusion,
		Timestamp: time.Now().UTC(),
	}
	if len(premises) == 0 {
		c.FinalText = NoPremisesMessage
		return c
	}
	if !c.Verdict.Valid {
		s.logger.Warn("conclusion failed logical validation", logging.Field{Key: "reason", Value: c.Verdict.Reason})
	}

	c.Validation = s.evaluator.ValidateResponse(ctx, conclusion, map[string]any{"context": "conclusion_validation"}, "")
	if !c.Validation.IsValid {
		c.FinalText = c.Validation.ModifiedResponse
	}

	s.mu.Lock()
	s.conclusions = append(s.conclusions, *c)
	s.mu.Unlock()
	return c
}
