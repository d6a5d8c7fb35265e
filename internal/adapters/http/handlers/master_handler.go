package handlers

import (
	"credit-admin/internal/core/domain"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler handles reference data endpoints
type MasterHandler struct{}

// NewMasterHandler creates a new master handler
func NewMasterHandler() *MasterHandler {
	return &MasterHandler{}
}

// ============================================================
// Loan reference data
// ============================================================

// loanRules describes the application form bounds
type loanRules struct {
	MinAmount       int    `json:"min_amount"`
	MaxAmount       int    `json:"max_amount"`
	MinDescription  int    `json:"min_description"`
	MaxDescription  int    `json:"max_description"`
	DefaultPurpose  string `json:"default_purpose"`
	MinPasswordSize int    `json:"min_password"`
}

// ListLoanPurposes lists accepted loan purposes and the form bounds
// @Summary List loan purposes
// @Tags Master
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/loan-purposes [get]
func (h *MasterHandler) ListLoanPurposes(c *fiber.Ctx) error {
	return response.Success(c, "Loan purposes retrieved successfully", fiber.Map{
		"purposes": domain.LoanPurposes,
		"rules": loanRules{
			MinAmount:       domain.MinLoanAmount,
			MaxAmount:       domain.MaxLoanAmount,
			MinDescription:  domain.MinDescriptionLen,
			MaxDescription:  domain.MaxDescriptionLen,
			DefaultPurpose:  string(domain.PurposePersonal),
			MinPasswordSize: domain.MinPasswordLen,
		},
	})
}

// ListLoanStatuses lists review statuses in workflow order
// @Summary List loan statuses
// @Tags Master
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/loan-statuses [get]
func (h *MasterHandler) ListLoanStatuses(c *fiber.Ctx) error {
	type status struct {
		Status   domain.LoanStatus   `json:"status"`
		Terminal bool                `json:"terminal"`
		Next     []domain.LoanStatus `json:"next,omitempty"`
	}

	out := make([]status, 0, len(domain.LoanStatuses))
	for _, s := range domain.LoanStatuses {
		entry := status{Status: s, Terminal: s.IsTerminal()}
		for _, to := range domain.LoanStatuses {
			if domain.CanTransition(s, to) {
				entry.Next = append(entry.Next, to)
			}
		}
		out = append(out, entry)
	}

	return response.Success(c, "Loan statuses retrieved successfully", out)
}

// ListRoles lists roles with the capabilities each holds
// @Summary List roles
// @Tags Master
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/roles [get]
func (h *MasterHandler) ListRoles(c *fiber.Ctx) error {
	capabilities := []domain.Capability{
		domain.CapApply,
		domain.CapVerify,
		domain.CapReject,
		domain.CapApprove,
		domain.CapManageUsers,
		domain.CapViewReports,
	}

	out := make(map[domain.Role][]domain.Capability, len(domain.Roles))
	for _, r := range domain.Roles {
		out[r] = []domain.Capability{}
		for _, capability := range capabilities {
			if r.Can(capability) {
				out[r] = append(out[r], capability)
			}
		}
	}

	return response.Success(c, "Roles retrieved successfully", out)
}
