package guard

import "credit-admin/internal/core/domain"

// View is a protected screen of the dashboard
type View struct {
	Name  string        `json:"name"`
	Path  string        `json:"path"`
	Title string        `json:"title"`
	Roles []domain.Role `json:"roles,omitempty"` // empty: any authenticated role
}

// Views lists the protected screens in navigation order
var Views = []View{
	{Name: "dashboard", Path: "/dashboard", Title: "Dashboard"},
	{Name: "apply-loan", Path: "/apply-loan", Title: "Apply for Loan"},
	{Name: "borrowers", Path: "/borrowers", Title: "Borrowers"},
	{Name: "loans", Path: "/loans", Title: "Loans"},
	{Name: "repayments", Path: "/repayments", Title: "Repayments"},
	{Name: "reports", Path: "/reports", Title: "Reports", Roles: domain.RolesWith(domain.CapViewReports)},
	{Name: "access-config", Path: "/access-config", Title: "Access Configuration", Roles: domain.RolesWith(domain.CapManageUsers)},
}

// FindView looks up a view by name
func FindView(name string) (View, bool) {
	for _, v := range Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// EvaluateView runs Evaluate with the view's allow-list
func EvaluateView(session *domain.User, v View) Decision {
	return Evaluate(session, v.Roles...)
}

// Navigation returns the views session may open. A nil session sees nothing.
func Navigation(session *domain.User) []View {
	var out []View
	for _, v := range Views {
		if EvaluateView(session, v).Allowed() {
			out = append(out, v)
		}
	}
	return out
}
