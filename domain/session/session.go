package session

import (
	"time"

	"ikigai/internal/errors"
)

// HashLength is the length of the public session identifier
const HashLength = 10

// Status is the lifecycle state of a session. Transitions only move forward:
// in_progress -> completed -> analyzed.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAnalyzed   Status = "analyzed"
)

// Session is the aggregate tracking one questionnaire attempt end-to-end.
// State changes go through the transition methods; fields are not reachable
// from outside the package.
type Session struct {
	id        string
	hash      string
	context   Context
	answers   Answers
	status    Status
	analysis  *Analysis
	createdAt time.Time
	updatedAt time.Time
}

// New creates a fresh session with the given public hash and validated context
func New(hash string, ctx Context, now time.Time) *Session {
	return &Session{
		hash:      hash,
		context:   ctx,
		answers:   EmptyAnswers(),
		status:    StatusInProgress,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Hash() string         { return s.hash }
func (s *Session) Context() Context     { return s.context }
func (s *Session) Status() Status       { return s.status }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Answers returns a copy; mutating the returned lists does not touch the
// session's state.
func (s *Session) Answers() Answers { return s.answers.clone() }

// Analysis returns a copy of the attached AI analysis, or nil before the
// session reaches analyzed
func (s *Session) Analysis() *Analysis {
	if s.analysis == nil {
		return nil
	}
	a := *s.analysis
	a.SuggestedCareers = cloneList(a.SuggestedCareers)
	a.IdentifiedGaps = cloneList(a.IdentifiedGaps)
	return &a
}

// UpdateAnswers merges a partial answer set into the session. When the merge
// completes all four pillars and the session is still in progress, the status
// advances to completed. A completed or analyzed session keeps its status no
// matter how the answers change.
func (s *Session) UpdateAnswers(partial PartialAnswers, now time.Time) {
	s.answers = s.answers.Merge(partial)
	s.updatedAt = now

	if s.answers.IsComplete() && s.status == StatusInProgress {
		s.status = StatusCompleted
	}
}

// CanBeAnalyzed reports whether the session is ready for AI analysis
func (s *Session) CanBeAnalyzed() bool {
	return s.status == StatusCompleted && s.answers.IsComplete()
}

// AttachAnalysis records the AI analysis and advances the session to
// analyzed. Calling it on anything but a completed session is a programming
// error, guarded here in case a caller bypassed the precondition check.
func (s *Session) AttachAnalysis(a Analysis, now time.Time) error {
	if s.status != StatusCompleted {
		return errors.IllegalState("cannot attach analysis to a session that is not completed")
	}
	s.analysis = &a
	s.status = StatusAnalyzed
	s.updatedAt = now
	return nil
}
