package domain

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleDGPEC    = "dgpec"
	RoleDG       = "dg"
)

// Actor is the identity asserted by the auth middleware. The workflow trusts
// this role/department assertion for its authorization checks.
type Actor struct {
	UserID      string
	EmployeeID  string
	DisplayName string
	Role        string
	Department  string
}

func IsKnownRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleDGPEC, RoleDG:
		return true
	default:
		return false
	}
}
