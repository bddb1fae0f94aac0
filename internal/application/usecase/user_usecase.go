package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// UserUseCase administración de usuarios del panel de staff. El auto-registro
// y el login viven en el paquete auth; aquí solo operan cuentas ajenas.
type UserUseCase struct {
	userRepo   repository.UserRepository
	rentalRepo repository.RentalRepository
}

// NewUserUseCase construye el caso de uso de administración de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, rentalRepo repository.RentalRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, rentalRepo: rentalRepo}
}

// List devuelve todos los usuarios ordenados por username.
func (uc *UserUseCase) List() (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Total: len(items)}, nil
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Create da de alta un usuario con cualquier rol, incluido staff. A
// diferencia del auto-registro, esta ruta ya está protegida por RequireRole.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol inválido %q", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Delete elimina una cuenta. Se rechaza si el usuario tiene alquileres
// activos: primero hay que devolver o cancelar.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	rentals, err := uc.rentalRepo.ListByUser(id)
	if err != nil {
		return err
	}
	for _, r := range rentals {
		if r.Active() {
			return fmt.Errorf("%w: el usuario tiene alquileres activos", domain.ErrGuard)
		}
	}
	return uc.userRepo.Delete(id)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
