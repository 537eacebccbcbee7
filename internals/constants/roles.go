package constants

import "fmt"

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
)

// Template pesan error role
const (
	ErrOnlyHRCanAccess     = "❌ Hanya HR atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorHR(feature string) string {
	return fmt.Sprintf(ErrOnlyHRCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{RoleEmployee, RoleHR, RoleAdmin, RoleOwner}
	HRRoles  = []string{RoleHR, RoleAdmin, RoleOwner}
)
