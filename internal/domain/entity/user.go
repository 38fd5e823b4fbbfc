package entity

import (
	"fmt"
	"time"

	"github.com/lot-pos/lot-api/internal/domain"
)

// Roles válidos para User.
const (
	RoleAdministrator = "Administrator"
	RoleEmployee      = "Employee"
)

// User usuario del sistema con rol para autorización.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // Administrator, Employee
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece al conjunto permitido.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleEmployee
}

// ChangeRole mutación explícita del rol con validación de dominio.
func (u *User) ChangeRole(newRole string) error {
	if !ValidRole(newRole) {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, newRole)
	}
	u.Role = newRole
	return nil
}
