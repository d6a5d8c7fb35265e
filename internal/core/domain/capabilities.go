package domain

// Capability names an action gated by role
type Capability string

const (
	CapApply       Capability = "apply"
	CapVerify      Capability = "verify"
	CapReject      Capability = "reject"
	CapApprove     Capability = "approve"
	CapManageUsers Capability = "manage-users"
	CapViewReports Capability = "view-reports"
)

// capabilities is the single role-capability table. Presentation code asks
// this table instead of comparing roles inline.
var capabilities = map[Role]map[Capability]bool{
	RoleUser: {
		CapApply: true,
	},
	RoleVerifier: {
		CapApply:       true,
		CapVerify:      true,
		CapReject:      true,
		CapViewReports: true,
	},
	RoleAdmin: {
		CapApply:       true,
		CapVerify:      true,
		CapReject:      true,
		CapApprove:     true,
		CapManageUsers: true,
		CapViewReports: true,
	},
}

// Can reports whether role r holds capability c
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// RolesWith returns the roles holding capability c, in Roles order
func RolesWith(c Capability) []Role {
	var out []Role
	for _, r := range Roles {
		if r.Can(c) {
			out = append(out, r)
		}
	}
	return out
}

// transitions is the explicit review state machine. Only consulted when the
// ledger runs with strict transitions.
var transitions = map[LoanStatus][]LoanStatus{
	LoanPending:  {LoanVerified, LoanRejected},
	LoanVerified: {LoanApproved, LoanRejected},
}

// CanTransition reports whether from -> to is an edge of the review workflow
func CanTransition(from, to LoanStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CapabilityFor maps a target status to the capability needed to request it
func CapabilityFor(to LoanStatus) Capability {
	switch to {
	case LoanVerified:
		return CapVerify
	case LoanApproved:
		return CapApprove
	case LoanRejected:
		return CapReject
	}
	return CapApply
}
