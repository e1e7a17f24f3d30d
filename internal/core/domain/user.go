package domain

// UserRole identifies the access level of a staff member.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleCashier    UserRole = "CASHIER"
)

// IsValid reports whether the role is one of the known staff roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleCashier:
		return true
	}
	return false
}

// User represents a staff member who can sign in to the dashboard.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}
