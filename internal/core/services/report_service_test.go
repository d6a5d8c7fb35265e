package services

import (
	"bytes"
	"context"
	"testing"

	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

func TestExportLoans(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	first, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	second, _ := ledger.ApplyForLoan(ctx, validApply(), jane)
	_, _ = ledger.ApproveLoan(ctx, first.ID, &ReviewInput{Notes: "ok"}, admin)

	data, err := NewReportService(ledger).ExportLoans(ctx, repositories.LoanFilter{})
	if err != nil {
		t.Fatalf("ExportLoans failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Invalid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(loansSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][4] != "Status" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[1][0] != second.ID || rows[2][0] != first.ID {
		t.Errorf("Rows should be newest first")
	}
	if rows[2][4] != string(domain.LoanApproved) || rows[2][8] != admin.ID || rows[2][9] != "ok" {
		t.Errorf("Unexpected approved row %v", rows[2])
	}
}

func TestExportLoans_Filtered(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	_, _ = ledger.ApplyForLoan(ctx, validApply(), john)
	_, _ = ledger.RejectLoan(ctx, loan.ID, nil, jane)

	data, err := NewReportService(ledger).ExportLoans(ctx, repositories.LoanFilter{Status: domain.LoanRejected})
	if err != nil {
		t.Fatalf("ExportLoans failed: %v", err)
	}
	f, _ := excelize.OpenReader(bytes.NewReader(data))
	defer f.Close()
	rows, _ := f.GetRows(loansSheet)
	if len(rows) != 2 || rows[1][0] != loan.ID {
		t.Errorf("Expected only the rejected loan, got %d rows", len(rows))
	}
}
