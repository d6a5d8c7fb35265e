package handlers

import (
	"context"
	"fmt"
	"time"

	"credit-admin/internal/adapters/http/middleware"
	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/core/services"
	"credit-admin/internal/pkg/pagination"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	ledger  *services.LoanLedger
	reports *services.ReportService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(ledger *services.LoanLedger, reports *services.ReportService) *LoanHandler {
	return &LoanHandler{
		ledger:  ledger,
		reports: reports,
	}
}

func filterFrom(c *fiber.Ctx) repositories.LoanFilter {
	return repositories.LoanFilter{
		Search: c.Query("search"),
		Status: domain.LoanStatus(c.Query("status")),
		UserID: c.Query("user_id"),
	}
}

// ListLoans handles listing loan applications
// @Summary List loans
// @Description Newest first. search matches officer name, purpose, amount and status
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Free text search"
// @Param status query string false "Status filter"
// @Param user_id query string false "Owner filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.ledger.ListLoans(c.UserContext(), filterFrom(c), params.Offset, params.Limit)
	if err != nil {
		return writeError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(loans, params, total))
}

// GetLoan handles getting a loan by ID
// @Summary Get loan by ID
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	loan, err := h.ledger.GetLoan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// ApplyLoan handles a loan application by the session user
// @Summary Apply for a loan
// @Description Amount 5000..1000000, description 20..500 characters, purpose defaults to Personal
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplyInput true "Application"
// @Success 201 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) ApplyLoan(c *fiber.Ctx) error {
	var input services.ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.ledger.ApplyForLoan(c.UserContext(), &input, middleware.CurrentUser(c))
	if err != nil {
		return writeError(c, err, "Failed to submit application")
	}

	return response.Created(c, "Loan application submitted successfully", loan)
}

// VerifyLoan handles marking a loan verified
// @Summary Verify loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body services.ReviewInput false "Optional note"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/verify [put]
func (h *LoanHandler) VerifyLoan(c *fiber.Ctx) error {
	return h.review(c, h.ledger.VerifyLoan, "Loan verified successfully")
}

// RejectLoan handles marking a loan rejected
// @Summary Reject loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body services.ReviewInput false "Optional note"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/reject [put]
func (h *LoanHandler) RejectLoan(c *fiber.Ctx) error {
	return h.review(c, h.ledger.RejectLoan, "Loan rejected successfully")
}

// ApproveLoan handles marking a loan approved
// @Summary Approve loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body services.ReviewInput false "Optional note"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/approve [put]
func (h *LoanHandler) ApproveLoan(c *fiber.Ctx) error {
	return h.review(c, h.ledger.ApproveLoan, "Loan approved successfully")
}

type reviewFunc func(ctx context.Context, id string, input *services.ReviewInput, actor *domain.User) (*domain.LoanApplication, error)

func (h *LoanHandler) review(c *fiber.Ctx, fn reviewFunc, message string) error {
	var input services.ReviewInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	loan, err := fn(c.UserContext(), c.Params("id"), &input, middleware.CurrentUser(c))
	if err != nil {
		return writeError(c, err, "Failed to update loan")
	}

	return response.Success(c, message, loan)
}

// ExportLoans handles downloading the ledger as a spreadsheet
// @Summary Export loans
// @Description xlsx workbook of the loans matching the filters (Verifier or Admin)
// @Tags Loans
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param search query string false "Free text search"
// @Param status query string false "Status filter"
// @Success 200 {file} file
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loans/export [get]
func (h *LoanHandler) ExportLoans(c *fiber.Ctx) error {
	data, err := h.reports.ExportLoans(c.UserContext(), filterFrom(c))
	if err != nil {
		return writeError(c, err, "Failed to export loans")
	}

	filename := fmt.Sprintf("loans-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
