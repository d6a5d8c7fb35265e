package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser     Role = "user"
	RoleVerifier Role = "verifier"
	RoleAdmin    Role = "admin"
)

// Roles lists every known role
var Roles = []Role{RoleUser, RoleVerifier, RoleAdmin}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVerifier, RoleAdmin:
		return true
	}
	return false
}

// User represents a roster entry
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Image        string `json:"image,omitempty"`
	PasswordHash string `json:"-"` // only used with strict credentials
}

// Clone returns a copy that can be handed out without sharing state
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// UserPatch holds the fields updateUser may merge into a roster entry.
// Nil fields are left untouched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *Role   `json:"role"`
	Image *string `json:"image"`
}

// Apply merges the patch into u
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
}

// LoanStatus represents the review state of an application
type LoanStatus string

const (
	LoanPending  LoanStatus = "pending"
	LoanVerified LoanStatus = "verified"
	LoanApproved LoanStatus = "approved"
	LoanRejected LoanStatus = "rejected"
)

// LoanStatuses lists every status in workflow order
var LoanStatuses = []LoanStatus{LoanPending, LoanVerified, LoanApproved, LoanRejected}

// IsTerminal reports whether no transition leaves s
func (s LoanStatus) IsTerminal() bool {
	return s == LoanApproved || s == LoanRejected
}

// LoanPurpose is the declared use of the borrowed amount
type LoanPurpose string

const (
	PurposeDebt      LoanPurpose = "Debt Consolidation"
	PurposeBusiness  LoanPurpose = "Business"
	PurposePersonal  LoanPurpose = "Personal"
	PurposeEducation LoanPurpose = "Education"
	PurposeHome      LoanPurpose = "Home Improvement"
	PurposeAuto      LoanPurpose = "Auto"
	PurposeMedical   LoanPurpose = "Medical"
	PurposeOther     LoanPurpose = "Other"
)

// LoanPurposes lists every accepted purpose
var LoanPurposes = []LoanPurpose{
	PurposeDebt,
	PurposeBusiness,
	PurposePersonal,
	PurposeEducation,
	PurposeHome,
	PurposeAuto,
	PurposeMedical,
	PurposeOther,
}

// IsValid reports whether p is one of the accepted purposes
func (p LoanPurpose) IsValid() bool {
	for _, known := range LoanPurposes {
		if p == known {
			return true
		}
	}
	return false
}

// Submission bounds enforced at the form boundary and re-checked by the ledger
const (
	MinLoanAmount     = 5000
	MaxLoanAmount     = 1000000
	MinDescriptionLen = 20
	MaxDescriptionLen = 500
	MinPasswordLen    = 6
)

// LoanApplication represents a loan request and its review state
type LoanApplication struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	OfficerName  string      `json:"officer_name"`
	OfficerImage string      `json:"officer_image,omitempty"`
	Amount       float64     `json:"amount"`
	Purpose      LoanPurpose `json:"purpose"`
	Description  string      `json:"description,omitempty"`
	Status       LoanStatus  `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	VerifiedBy   string      `json:"verified_by,omitempty"`
	ApprovedBy   string      `json:"approved_by,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// Clone returns a copy of the application
func (l *LoanApplication) Clone() *LoanApplication {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// MonthsInSeries is the length of every monthly series in DashboardStats
const MonthsInSeries = 12

// DashboardStats is derived from the loan collection on every read
type DashboardStats struct {
	TotalLoans     int     `json:"total_loans"`
	TotalBorrowers int     `json:"total_borrowers"`
	CashDisbursed  float64 `json:"cash_disbursed"`
	PendingAmount  float64 `json:"pending_amount"`

	PendingLoans  int `json:"pending_loans"`
	VerifiedLoans int `json:"verified_loans"`
	ApprovedLoans int `json:"approved_loans"`
	RejectedLoans int `json:"rejected_loans"`

	// Monthly series, index 0 is the oldest month, the last index the current one
	Months           []string `json:"months"`
	Applications     []int    `json:"applications"`
	LoansReleased    []int    `json:"loans_released"`
	OutstandingLoans []int    `json:"outstanding_loans"`
}
