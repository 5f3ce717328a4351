package entity

import "time"

// Roles válidos para User.
const (
	RoleManager  = "manager"
	RolePurchase = "purchase"
	RoleKitchen  = "kitchen"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleManager || r == RolePurchase || r == RoleKitchen
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string // manager, purchase, kitchen
	CreatedAt    time.Time
}
