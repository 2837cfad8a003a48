// Package profile holds learner profiles in memory for the life of the
// process.
package profile

import (
	"strconv"
	"sync"
)

// DefaultAge is used when a profile is created without an age.
const DefaultAge = 8

// Profile is a child learner. Profiles are never modified or deleted.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Interests []string `json:"interests"`
}

// NewProfile carries the optional inputs to Create. A nil Age means
// "not given".
type NewProfile struct {
	Name      string
	Age       *int
	Interests []string
}

// Store maps profile IDs to profiles.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	count    int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{profiles: make(map[string]Profile)}
}

// Create stores a new profile with ID "profile_<n>". Missing fields take
// their defaults and no input is rejected.
func (s *Store) Create(in NewProfile) Profile {
	age := DefaultAge
	if in.Age != nil {
		age = *in.Age
	}
	interests := append([]string{}, in.Interests...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	p := Profile{
		ID:        "profile_" + strconv.Itoa(s.count),
		Name:      in.Name,
		Age:       age,
		Interests: interests,
	}
	s.profiles[p.ID] = p
	return p.clone()
}

// Get looks up a profile by ID.
func (s *Store) Get(id string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, false
	}
	return p.clone(), true
}

// Exists reports whether id names a stored profile.
func (s *Store) Exists(id string) bool {
	_, ok := s.Get(id)
	return ok
}

func (p Profile) clone() Profile {
	p.Interests = append([]string{}, p.Interests...)
	return p
}
