package session

import (
	"time"

	"ikigai/internal/errors"
)

// Snapshot is the serialization shape of a session, shared by the HTTP
// responses and the persistence layer.
type Snapshot struct {
	ID         string    `json:"id"`
	Hash       string    `json:"hash"`
	Context    Context   `json:"context"`
	Answers    Answers   `json:"answers"`
	Status     Status    `json:"status"`
	AIAnalysis *Analysis `json:"aiAnalysis,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Snapshot converts the session into its plain serialization shape
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:         s.id,
		Hash:       s.hash,
		Context:    s.context,
		Answers:    s.answers.clone(),
		Status:     s.status,
		AIAnalysis: s.Analysis(),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}

// FromSnapshot rebuilds a session from its stored shape. The context is
// re-validated on the way in, and the analysis/status pairing invariant is
// checked so a corrupt row surfaces as an error instead of an impossible
// aggregate.
func FromSnapshot(snap Snapshot) (*Session, error) {
	ctx, err := NewContext(
		snap.Context.Name,
		snap.Context.Age,
		snap.Context.CurrentProfession,
		snap.Context.EducationArea,
		snap.Context.LifeStage,
		snap.Context.CurrentSituation,
	)
	if err != nil {
		return nil, err
	}

	switch snap.Status {
	case StatusInProgress, StatusCompleted:
		if snap.AIAnalysis != nil {
			return nil, errors.IllegalState("session " + snap.Hash + " carries an analysis but is not analyzed")
		}
	case StatusAnalyzed:
		if snap.AIAnalysis == nil {
			return nil, errors.IllegalState("session " + snap.Hash + " is analyzed but has no analysis")
		}
	default:
		return nil, errors.IllegalState("session " + snap.Hash + " has unknown status " + string(snap.Status))
	}

	answers := snap.Answers
	if answers.Love == nil && answers.Skills == nil && answers.WorldNeeds == nil && answers.PaidFor == nil {
		answers = EmptyAnswers()
	}

	var analysis *Analysis
	if snap.AIAnalysis != nil {
		a := *snap.AIAnalysis
		analysis = &a
	}

	return &Session{
		id:        snap.ID,
		hash:      snap.Hash,
		context:   ctx,
		answers:   answers,
		status:    snap.Status,
		analysis:  analysis,
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
	}, nil
}
