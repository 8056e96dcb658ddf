package probe

import (
	"context"
	"sync"

	"github.com/probelabs/hookprobe/internal/domain"
)

// Phase is the explicit lifecycle of the single-request session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseResolved
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseResolved:
		return "resolved"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Sender performs one webhook submission.
type Sender interface {
	Submit(ctx context.Context, req domain.PendingRequest) (*domain.WebhookResult, error)
}

// Session owns the single-request lifecycle: at most one submission is in
// flight, and exactly one result (the latest) is retained. Phase transitions
// happen only through Submit outcomes, so "loading" and "has result" can
// never desynchronize.
type Session struct {
	mu     sync.Mutex
	phase  Phase
	result *domain.WebhookResult
	sender Sender
}

// NewSession builds a session around the given sender (or a default Submitter).
func NewSession(sender Sender) *Session {
	if sender == nil {
		sender = NewSubmitter(nil)
	}
	return &Session{phase: PhaseIdle, sender: sender}
}

// Submit runs one submission through the session lifecycle.
//
// Re-invocation while a submission is outstanding fails with ErrInFlight.
// A validation failure is reported without entering the submitting phase.
// On success the prior result is released and replaced; on network or parse
// failure the prior result is discarded and the session lands in the failed
// phase with no result.
func (s *Session) Submit(ctx context.Context, req domain.PendingRequest) (*domain.WebhookResult, error) {
	s.mu.Lock()
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return nil, domain.ErrInFlight
	}
	if err := Validate(req); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.phase = PhaseSubmitting
	s.mu.Unlock()

	result, err := s.sender.Submit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.Release()
	if err != nil {
		s.phase = PhaseFailed
		s.result = nil
		return nil, err
	}
	s.phase = PhaseResolved
	s.result = result
	return result, nil
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the latest resolved result, or nil.
func (s *Session) Result() *domain.WebhookResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
