package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const candidateSheet = "Candidates"

var candidateHeaders = []string{
	"Name", "Email", "Phone", "Location", "Visa Status", "Skills", "Status",
	"Source", "Applied Date", "Pay Rate", "Submission Rate", "Margin", "Aging Days",
}

// ExportCandidates writes the candidate report as an xlsx workbook.
func (s *Service) ExportCandidates(ctx context.Context, w io.Writer) error {
	rows, err := s.Candidates(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", candidateSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, header := range candidateHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(candidateSheet, cell, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, row := range rows {
		margin, _ := row.Margin.Float64()
		values := []any{
			row.FullName, row.Email, row.Phone, row.Location, row.VisaStatus, row.Skills, string(row.Status),
			row.Source, row.AppliedDate, row.PayRate, row.SubmissionRate, margin, row.AgingDays,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(candidateSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	s.logger.Debug("candidate report exported", "rows", len(rows))
	return nil
}
