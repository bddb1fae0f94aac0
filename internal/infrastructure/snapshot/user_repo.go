package snapshot

import (
	"sort"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre el snapshot.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un nuevo usuario. Devuelve ErrUsernameAlreadyExists si el
// username ya está tomado.
func (r *UserRepo) Create(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.Username == user.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	s.data.Users[user.ID] = cloneUser(user)
	return s.saveLocked()
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data.Users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetByUsername obtiene un usuario por username. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario almacenado.
func (r *UserRepo) Update(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.data.Users[user.ID] = cloneUser(user)
	return s.saveLocked()
}

// List devuelve todos los usuarios ordenados por username.
func (r *UserRepo) List() ([]*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.User, 0, len(s.data.Users))
	for _, u := range s.data.Users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.data.Users, id)
	return s.saveLocked()
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}
