package domain

import (
	"errors"
	"testing"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleUser, CapApply, true},
		{RoleUser, CapVerify, false},
		{RoleUser, CapApprove, false},
		{RoleVerifier, CapVerify, true},
		{RoleVerifier, CapReject, true},
		{RoleVerifier, CapApprove, false},
		{RoleVerifier, CapManageUsers, false},
		{RoleAdmin, CapApprove, true},
		{RoleAdmin, CapManageUsers, true},
		{Role("guest"), CapApply, false},
	}

	for _, tc := range cases {
		if got := tc.role.Can(tc.cap); got != tc.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestRolesWith(t *testing.T) {
	roles := RolesWith(CapApprove)
	if len(roles) != 1 || roles[0] != RoleAdmin {
		t.Errorf("Expected only admin to approve, got %v", roles)
	}

	roles = RolesWith(CapVerify)
	if len(roles) != 2 || roles[0] != RoleVerifier || roles[1] != RoleAdmin {
		t.Errorf("Expected verifier and admin to verify, got %v", roles)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]LoanStatus{
		{LoanPending, LoanVerified},
		{LoanPending, LoanRejected},
		{LoanVerified, LoanApproved},
		{LoanVerified, LoanRejected},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("Expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]LoanStatus{
		{LoanPending, LoanApproved},
		{LoanApproved, LoanRejected},
		{LoanRejected, LoanVerified},
		{LoanApproved, LoanApproved},
		{LoanVerified, LoanVerified},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("Expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Error("ErrUserNotFound should be a NotFound")
	}
	if !errors.Is(ErrEmailAlreadyInUse, ErrConflict) {
		t.Error("ErrEmailAlreadyInUse should be a Conflict")
	}
	if !errors.Is(ErrCannotRemoveSelf, ErrInvalidOperation) {
		t.Error("ErrCannotRemoveSelf should be an InvalidOperation")
	}
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("Unexpected message %q", ErrUserNotFound.Error())
	}

	var err error = NewValidationError("amount", "too small")
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
	if err.Error() != "amount: too small" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	err = &TransitionError{From: LoanApproved, To: LoanVerified}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("TransitionError should unwrap to ErrInvalidTransition")
	}
}

func TestUserPatchApply(t *testing.T) {
	u := &User{ID: "1", Name: "John", Email: "john@example.com", Role: RoleUser}
	name := "Johnny"
	role := RoleVerifier
	UserPatch{Name: &name, Role: &role}.Apply(u)

	if u.Name != "Johnny" || u.Role != RoleVerifier {
		t.Errorf("Patch not applied: %+v", u)
	}
	if u.Email != "john@example.com" || u.ID != "1" {
		t.Errorf("Untouched fields changed: %+v", u)
	}
}

func TestPurposeAndRoleValidity(t *testing.T) {
	if !PurposePersonal.IsValid() || LoanPurpose("Vacation").IsValid() {
		t.Error("LoanPurpose.IsValid mismatch")
	}
	if !RoleAdmin.IsValid() || Role("ADMIN").IsValid() {
		t.Error("Role.IsValid mismatch")
	}
	if !LoanApproved.IsTerminal() || !LoanRejected.IsTerminal() || LoanPending.IsTerminal() {
		t.Error("LoanStatus.IsTerminal mismatch")
	}
}
