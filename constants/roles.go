package constants

// Role levels
const (
	RoleAdmin     = "admin"
	RoleFinance   = "finance"
	RoleWarehouse = "warehouse"
	RoleCourier   = "courier"

	// Special role matcher
	RoleAny = "any"
)

// Role groups for convenience
var (
	// BackOfficeRoles may manage master data and shipments end to end.
	BackOfficeRoles = []string{
		RoleAdmin,
		RoleFinance,
		RoleWarehouse,
	}

	// AllRoles is every role that can hold a login.
	AllRoles = []string{
		RoleAdmin,
		RoleFinance,
		RoleWarehouse,
		RoleCourier,
	}
)

// IsValidRole reports whether role is one of the defined role levels.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
