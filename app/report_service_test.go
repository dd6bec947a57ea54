package app

import (
	"context"
	"fmt"
	"testing"

	"ikigai/domain/session"
	"ikigai/internal"
	"ikigai/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct{}

func (fakeRenderer) Render(snap session.Snapshot) ([]byte, error) {
	return []byte("%PDF " + snap.Hash), nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) SendResult(ctx context.Context, to, name string, pdf []byte) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

// analyzedHash drives a session through the full lifecycle and returns its hash
func analyzedHash(t *testing.T, sessions *SessionService) string {
	t.Helper()
	created, err := sessions.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = sessions.UpdateAnswers(context.Background(), created.Hash, completePartial())
	require.NoError(t, err)
	_, err = sessions.Analyze(context.Background(), created.Hash)
	require.NoError(t, err)
	return created.Hash
}

func TestRenderPDF(t *testing.T) {
	sessions, repo, _ := newTestService(t)
	logger := internal.NewLogger(internal.LogLevelError)
	reports := NewReportService(repo, fakeRenderer{}, &fakeSender{}, logger)

	hash := analyzedHash(t, sessions)

	pdf, err := reports.RenderPDF(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, "%PDF "+hash, string(pdf))
}

func TestRenderPDF_RequiresAnalysis(t *testing.T) {
	sessions, repo, _ := newTestService(t)
	logger := internal.NewLogger(internal.LogLevelError)
	reports := NewReportService(repo, fakeRenderer{}, &fakeSender{}, logger)

	created, err := sessions.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = reports.RenderPDF(context.Background(), created.Hash)
	require.Error(t, err)
	assert.Equal(t, errors.CodePreconditionFailed, errors.GetCode(err))
}

func TestRenderPDF_UnknownHash(t *testing.T) {
	_, repo, _ := newTestService(t)
	reports := NewReportService(repo, fakeRenderer{}, &fakeSender{}, internal.NewLogger(internal.LogLevelError))

	_, err := reports.RenderPDF(context.Background(), "nope456789")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestSendResultEmail(t *testing.T) {
	sessions, repo, _ := newTestService(t)
	sender := &fakeSender{}
	reports := NewReportService(repo, fakeRenderer{}, sender, internal.NewLogger(internal.LogLevelError))

	hash := analyzedHash(t, sessions)

	require.NoError(t, reports.SendResultEmail(context.Background(), hash, "marina@example.com"))
	assert.Equal(t, []string{"marina@example.com"}, sender.sent)
}

func TestSendResultEmail_SenderFailure(t *testing.T) {
	sessions, repo, _ := newTestService(t)
	sender := &fakeSender{err: fmt.Errorf("smtp down")}
	reports := NewReportService(repo, fakeRenderer{}, sender, internal.NewLogger(internal.LogLevelError))

	hash := analyzedHash(t, sessions)

	err := reports.SendResultEmail(context.Background(), hash, "marina@example.com")
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmailSendFailed, errors.GetCode(err))
}
