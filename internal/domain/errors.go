package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; ningún caso de uso expone errores crudos
// de infraestructura.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrVehicleNotFound       = errors.New("vehículo no encontrado")
	ErrRentalNotFound        = errors.New("alquiler no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrConflict              = errors.New("conflicto de fechas con un alquiler existente")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrGuard                 = errors.New("operación bloqueada por regla de negocio")
)
