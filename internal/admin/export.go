package admin

import (
	"context"
	"fmt"
	"time"

	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"

	"github.com/xuri/excelize/v2"
)

// Exporter writes the sessions of a period to an xlsx workbook
type Exporter struct {
	reader ports.AdminReader
	logger *internal.Logger

	now func() time.Time
}

// NewExporter creates a session exporter
func NewExporter(reader ports.AdminReader, logger *internal.Logger) *Exporter {
	return &Exporter{
		reader: reader,
		logger: logger,
		now:    time.Now,
	}
}

var exportHeaders = []string{
	"Hash", "Name", "Age", "Profession", "Life Stage", "Status",
	"Answers", "Analyzed At", "Created At", "Updated At",
}

// Export builds the workbook for the given period and returns its bytes
func (e *Exporter) Export(ctx context.Context, period string) ([]byte, error) {
	since := PeriodStart(period, e.now())

	snapshots, err := e.reader.ListSince(ctx, since, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions for export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sessions"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "failed to write export header")
		}
	}

	for i, snap := range snapshots {
		analyzedAt := ""
		if snap.AIAnalysis != nil {
			analyzedAt = snap.AIAnalysis.GeneratedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			snap.Hash,
			snap.Context.Name,
			snap.Context.Age,
			snap.Context.CurrentProfession,
			string(snap.Context.LifeStage),
			string(snap.Status),
			snap.Answers.TotalAnswers(),
			analyzedAt,
			snap.CreatedAt.Format(time.RFC3339),
			snap.UpdatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("failed to write export row %d", i+2))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize export workbook")
	}

	e.logger.Info("exported %d sessions period=%s", len(snapshots), period)
	return buf.Bytes(), nil
}
