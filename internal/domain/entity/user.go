package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleApproval    = "approval"    // autoridad que aprueba (pramukh / adhikrit)
	RoleAccount     = "account"     // sección de cuentas (lekha)
	RoleStorekeeper = "storekeeper" // encargado de almacén (jinshi)
	RoleStaff       = "staff"       // personal que solicita y recibe bienes
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleApproval, RoleAccount, RoleStorekeeper, RoleStaff:
		return true
	}
	return false
}

// User representa un usuario de la oficina.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Designation  string // pad / cargo, se imprime en las firmas
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
