package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User. El rol staff nunca se asigna vía auto-registro;
// solo mediante el seed o el panel de staff.
const (
	RoleCustomer  = "customer"
	RoleCorporate = "corporate"
	RoleStaff     = "staff"
)

// SelfRegisterRoles roles permitidos en el auto-registro.
var SelfRegisterRoles = map[string]bool{
	RoleCustomer:  true,
	RoleCorporate: true,
}

// ValidRole indica si el rol existe en el sistema.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleCorporate || role == RoleStaff
}

// User representa una cuenta del sistema. El rol es inmutable después de la
// creación.
type User struct {
	ID           string
	Username     string // único en todo el sistema
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Role         string // customer, corporate, staff
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const longRentalDays = 7 // umbral de descuento para clientes individuales

var (
	discountCorporate = decimal.NewFromFloat(0.15)
	discountLongTerm  = decimal.NewFromFloat(0.10)
)

// DiscountFor devuelve la fracción de descuento según el rol y la duración:
//   - corporate: 15% fijo
//   - customer:  10% en alquileres de 7 días o más
//   - staff y otros: sin descuento
func (u User) DiscountFor(days int) decimal.Decimal {
	switch u.Role {
	case RoleCorporate:
		return discountCorporate
	case RoleCustomer:
		if days >= longRentalDays {
			return discountLongTerm
		}
	}
	return decimal.Zero
}
