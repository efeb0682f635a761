package petstore

import (
	"cmp"
	"errors"
	"slices"
	"sync"
)

// ErrPetNotFound is returned for an unknown pet ID.
var ErrPetNotFound = errors.New("petstore: pet not found")

// Store keeps pets in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	pets   map[int64]Pet
	nextID int64
}

func NewStore() *Store {
	return &Store{pets: make(map[int64]Pet), nextID: 1}
}

// Add stores a new pet. A zero ID is replaced by the next free one.
func (s *Store) Add(p Pet) Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		for {
			if _, taken := s.pets[s.nextID]; !taken {
				break
			}
			s.nextID++
		}
		p.ID = s.nextID
		s.nextID++
	}
	s.pets[p.ID] = p
	return p
}

// Update replaces an existing pet.
func (s *Store) Update(p Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[p.ID]; !ok {
		return ErrPetNotFound
	}
	s.pets[p.ID] = p
	return nil
}

func (s *Store) Get(id int64) (Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[id]
	if !ok {
		return Pet{}, ErrPetNotFound
	}
	return p, nil
}

func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[id]; !ok {
		return ErrPetNotFound
	}
	delete(s.pets, id)
	return nil
}

// Find returns the pets matching keep, ordered by ID.
func (s *Store) Find(keep func(Pet) bool) []Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Pet{}
	for _, p := range s.pets {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Pet) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ByStatus returns the pets with any of the given statuses.
func (s *Store) ByStatus(statuses ...PetStatus) []Pet {
	return s.Find(func(p Pet) bool {
		return slices.Contains(statuses, p.Status)
	})
}

// ByTags returns the pets carrying any of the given tag names.
func (s *Store) ByTags(names ...string) []Pet {
	return s.Find(func(p Pet) bool {
		return slices.ContainsFunc(p.Tags, func(t Tag) bool {
			return slices.Contains(names, t.Name)
		})
	})
}
