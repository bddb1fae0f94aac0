// Package snapshot implementa la persistencia de la aplicación: colecciones
// en memoria respaldadas por un snapshot JSON en disco. El archivo se lee una
// sola vez al arrancar y se vuelca en cada mutación y en el apagado.
//
// La escritura es atómica (archivo temporal + rename); no hay garantías de
// recuperación ante un crash a mitad de rename, aceptable para el alcance del
// sistema.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// Store mantiene las colecciones de usuarios, vehículos y alquileres en
// memoria. Fiber atiende peticiones en paralelo, así que las colecciones se
// protegen con un RWMutex; los adaptadores de repositorio devuelven copias
// para que ningún caller comparta punteros con el store.
type Store struct {
	path string

	mu   sync.RWMutex
	data storeData
}

type storeData struct {
	Users    map[string]*entity.User    `json:"users"`
	Vehicles map[string]*entity.Vehicle `json:"vehicles"`
	Rentals  map[string]*entity.Rental  `json:"rentals"`
}

// Open carga el snapshot desde path (si existe) y devuelve el store listo
// para usar. Crea el directorio contenedor si hace falta.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: storeData{
			Users:    make(map[string]*entity.User),
			Vehicles: make(map[string]*entity.Vehicle),
			Rentals:  make(map[string]*entity.Rental),
		},
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio del snapshot: %w", err)
		}
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // primer arranque: snapshot vacío
		}
		return fmt.Errorf("leer snapshot: %w", err)
	}
	var data storeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decodificar snapshot: %w", err)
	}
	if data.Users == nil {
		data.Users = make(map[string]*entity.User)
	}
	if data.Vehicles == nil {
		data.Vehicles = make(map[string]*entity.Vehicle)
	}
	if data.Rentals == nil {
		data.Rentals = make(map[string]*entity.Rental)
	}
	s.data = data
	return nil
}

// Save vuelca el snapshot a disco. Los adaptadores lo invocan tras cada
// mutación; main lo invoca una última vez en el apagado.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// saveLocked asume que el caller ya tiene el lock de escritura.
func (s *Store) saveLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir snapshot temporal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("reemplazar snapshot: %w", err)
	}
	return nil
}

// Path devuelve la ruta del archivo de snapshot.
func (s *Store) Path() string {
	return s.path
}
