package ports

import (
	"context"

	"ikigai/domain/session"
)

// PDFRenderer turns an analyzed session into the printable report.
// Callers guarantee the snapshot carries a non-nil analysis.
type PDFRenderer interface {
	Render(snap session.Snapshot) ([]byte, error)
}

// EmailSender delivers the result report to the user
type EmailSender interface {
	SendResult(ctx context.Context, to, name string, pdf []byte) error
}
