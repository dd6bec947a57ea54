package app

import (
	"context"
	"time"

	"ikigai/domain/session"
	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// maxHashAttempts bounds the draw-and-check loop for public hashes so a
// pathological collision run or store outage cannot spin forever.
const maxHashAttempts = 10

// SessionService orchestrates the session lifecycle: create, read, answer
// updates, and AI analysis.
type SessionService struct {
	repo     ports.SessionRepository
	analyzer ports.Analyzer
	logger   *internal.Logger

	// overridable in tests
	newHash func() (string, error)
	now     func() time.Time
}

// CreateSessionInput carries the user context fields for a new session.
// The life stage is parsed and validated at the HTTP boundary.
type CreateSessionInput struct {
	Name              string
	Age               int
	CurrentProfession string
	EducationArea     string
	LifeStage         session.LifeStage
	CurrentSituation  string
}

// CreateSessionResult pairs the public hash with the created session
type CreateSessionResult struct {
	Hash    string           `json:"hash"`
	Session session.Snapshot `json:"session"`
}

// NewSessionService creates a session service
func NewSessionService(repo ports.SessionRepository, analyzer ports.Analyzer, logger *internal.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		analyzer: analyzer,
		logger:   logger,
		newHash: func() (string, error) {
			return gonanoid.New(session.HashLength)
		},
		now: time.Now,
	}
}

// Create validates the context, generates a collision-free public hash and
// persists a fresh in_progress session.
func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*CreateSessionResult, error) {
	userCtx, err := session.NewContext(
		input.Name,
		input.Age,
		input.CurrentProfession,
		input.EducationArea,
		input.LifeStage,
		input.CurrentSituation,
	)
	if err != nil {
		return nil, err
	}

	hash, err := s.generateHash(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, session.New(hash, userCtx, s.now()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	s.logger.Info("session created hash=%s name=%s", created.Hash(), userCtx.Name)

	return &CreateSessionResult{
		Hash:    created.Hash(),
		Session: created.Snapshot(),
	}, nil
}

// generateHash draws short identifiers until the store reports one unused.
// The store keeps a unique index on the column, so a race between the check
// and the insert still cannot produce duplicates.
func (s *SessionService) generateHash(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxHashAttempts; attempt++ {
		hash, err := s.newHash()
		if err != nil {
			return "", errors.Wrap(err, "failed to generate session hash")
		}

		exists, err := s.repo.HashExists(ctx, hash)
		if err != nil {
			return "", errors.Wrap(err, "failed to check hash uniqueness")
		}
		if !exists {
			return hash, nil
		}

		s.logger.Warn("session hash collision on attempt %d, redrawing", attempt+1)
	}
	return "", errors.InternalError("could not generate a unique session hash")
}

// Get returns the session with the given hash
func (s *SessionService) Get(ctx context.Context, hash string) (session.Snapshot, error) {
	sess, err := s.load(ctx, hash)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// UpdateAnswers merges a partial answer set into the session. Completing all
// four pillars advances an in_progress session to completed; the status never
// moves backward.
func (s *SessionService) UpdateAnswers(ctx context.Context, hash string, partial session.PartialAnswers) (session.Snapshot, error) {
	sess, err := s.load(ctx, hash)
	if err != nil {
		return session.Snapshot{}, err
	}

	sess.UpdateAnswers(partial, s.now())

	updated, err := s.repo.Update(ctx, sess)
	if err != nil {
		return session.Snapshot{}, errors.Wrap(err, "failed to persist answers")
	}

	s.logger.Debug("answers updated hash=%s total=%d status=%s",
		hash, updated.Answers().TotalAnswers(), updated.Status())

	return updated.Snapshot(), nil
}

// Analyze runs the AI analysis for a completed session. An already analyzed
// session returns its existing analysis without calling the provider again.
// Provider failures leave the session untouched at completed, so the caller
// can safely retry.
func (s *SessionService) Analyze(ctx context.Context, hash string) (session.Snapshot, error) {
	sess, err := s.load(ctx, hash)
	if err != nil {
		return session.Snapshot{}, err
	}

	if sess.Status() == session.StatusAnalyzed && sess.Analysis() != nil {
		s.logger.Info("session %s already analyzed, returning existing analysis", hash)
		return sess.Snapshot(), nil
	}

	if !sess.CanBeAnalyzed() {
		return session.Snapshot{}, errors.PreconditionFailed("session not ready for analysis, complete all answers first")
	}

	analysis, err := s.analyzer.AnalyzeSession(ctx, sess.Context(), sess.Answers())
	if err != nil {
		s.logger.Error("analysis failed hash=%s: %v", hash, err)
		return session.Snapshot{}, err
	}

	if err := sess.AttachAnalysis(*analysis, s.now()); err != nil {
		s.logger.Error("invariant violation attaching analysis hash=%s: %v", hash, err)
		return session.Snapshot{}, err
	}

	updated, err := s.repo.Update(ctx, sess)
	if err != nil {
		return session.Snapshot{}, errors.Wrap(err, "failed to persist analysis")
	}

	s.logger.Info("session analyzed hash=%s careers=%d", hash, len(analysis.SuggestedCareers))

	return updated.Snapshot(), nil
}

func (s *SessionService) load(ctx context.Context, hash string) (*session.Session, error) {
	sess, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if sess == nil {
		return nil, errors.NotFound("session")
	}
	return sess, nil
}
