package services

import (
	"bytes"
	"context"
	"fmt"

	"credit-admin/internal/adapters/persistence/repositories"

	"github.com/xuri/excelize/v2"
)

const loansSheet = "Loans"

var loanColumns = []string{
	"ID", "Officer", "Amount", "Purpose", "Status",
	"Created At", "Updated At", "Verified By", "Approved By", "Notes",
}

// ReportService builds spreadsheet exports of the ledger
type ReportService struct {
	ledger *LoanLedger
}

// NewReportService creates a new report service
func NewReportService(ledger *LoanLedger) *ReportService {
	return &ReportService{ledger: ledger}
}

// ExportLoans writes every loan matching filter to an xlsx workbook
func (s *ReportService) ExportLoans(ctx context.Context, filter repositories.LoanFilter) ([]byte, error) {
	loans, _, err := s.ledger.ListLoans(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", loansSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(loanColumns))
	for i, col := range loanColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(loansSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, loan := range loans {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			loan.ID,
			loan.OfficerName,
			loan.Amount,
			string(loan.Purpose),
			string(loan.Status),
			loan.CreatedAt.Format("2006-01-02 15:04"),
			loan.UpdatedAt.Format("2006-01-02 15:04"),
			loan.VerifiedBy,
			loan.ApprovedBy,
			loan.Notes,
		}
		if err := f.SetSheetRow(loansSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
