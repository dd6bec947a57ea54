package app

import (
	"context"

	"ikigai/domain/session"
	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"
)

// ReportService produces the outward-facing artifacts of an analyzed
// session: the PDF report and the result email. Neither feeds back into
// session state.
type ReportService struct {
	repo     ports.SessionRepository
	renderer ports.PDFRenderer
	email    ports.EmailSender
	logger   *internal.Logger
}

// NewReportService creates a report service
func NewReportService(repo ports.SessionRepository, renderer ports.PDFRenderer, email ports.EmailSender, logger *internal.Logger) *ReportService {
	return &ReportService{
		repo:     repo,
		renderer: renderer,
		email:    email,
		logger:   logger,
	}
}

// RenderPDF renders the report for an analyzed session
func (s *ReportService) RenderPDF(ctx context.Context, hash string) ([]byte, error) {
	snap, err := s.analyzedSnapshot(ctx, hash)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(snap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render PDF")
	}

	s.logger.Debug("pdf rendered hash=%s bytes=%d", hash, len(pdf))
	return pdf, nil
}

// SendResultEmail renders the report and emails it to the given address
func (s *ReportService) SendResultEmail(ctx context.Context, hash, to string) error {
	snap, err := s.analyzedSnapshot(ctx, hash)
	if err != nil {
		return err
	}

	pdf, err := s.renderer.Render(snap)
	if err != nil {
		return errors.Wrap(err, "failed to render PDF for email")
	}

	if err := s.email.SendResult(ctx, to, snap.Context.Name, pdf); err != nil {
		s.logger.Error("result email failed hash=%s to=%s: %v", hash, to, err)
		return errors.EmailSendFailed(err)
	}

	s.logger.Info("result email sent hash=%s to=%s", hash, to)
	return nil
}

func (s *ReportService) analyzedSnapshot(ctx context.Context, hash string) (session.Snapshot, error) {
	sess, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		return session.Snapshot{}, errors.Wrap(err, "failed to load session")
	}
	if sess == nil {
		return session.Snapshot{}, errors.NotFound("session")
	}
	if sess.Status() != session.StatusAnalyzed || sess.Analysis() == nil {
		return session.Snapshot{}, errors.PreconditionFailed("session must be analyzed before generating the report")
	}
	return sess.Snapshot(), nil
}
