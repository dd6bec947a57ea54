package pdf

import (
	"strings"
	"testing"
	"time"

	"ikigai/domain/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzedSnapshot() session.Snapshot {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	return session.Snapshot{
		ID:   "id-1",
		Hash: "hash123456",
		Context: session.Context{
			Name:              "Marina Silva",
			Age:               29,
			CurrentProfession: "Designer",
			EducationArea:     "Arts",
			LifeStage:         session.LifeStageTransition,
		},
		Answers: session.Answers{
			Love:       []string{"painting", "teaching"},
			Skills:     []string{"visual design"},
			WorldNeeds: []string{"art education"},
			PaidFor:    []string{"workshops"},
		},
		Status: session.StatusAnalyzed,
		AIAnalysis: &session.Analysis{
			ProfileSummary:           "A creative generalist.",
			SuggestedCareers:         []string{"Art educator", "Design lead"},
			IdentifiedGaps:           []string{"No formal teaching credential"},
			ActionPlan:               "Run a pilot workshop.",
			CurrentSituationAnalysis: "Good moment to experiment.",
			GeneratedAt:              now,
		},
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now,
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	out, err := NewRenderer().Render(analyzedSnapshot())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "output should be a PDF document")
	assert.Greater(t, len(out), 1000, "three pages of content expected")
}

func TestRender_WithoutAnalysis(t *testing.T) {
	snap := analyzedSnapshot()
	snap.Status = session.StatusCompleted
	snap.AIAnalysis = nil

	out, err := NewRenderer().Render(snap)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRender_HandlesAccentedText(t *testing.T) {
	snap := analyzedSnapshot()
	snap.Context.Name = "João Conceição"
	snap.Answers.Love = []string{"fotografia, violão e educação"}

	_, err := NewRenderer().Render(snap)
	require.NoError(t, err)
}
