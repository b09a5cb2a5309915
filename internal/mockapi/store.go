package mockapi

import (
	"fmt"
	"sync"

	"github.com/dimitrije/carshare/internal/models"
)

// Store is the in-memory persistence behind a Dispatcher. A Store is owned by the
// dispatcher it is handed to; the exported readers return copies and are meant for
// inspection only.
type Store struct {
	mu sync.Mutex

	users        []*models.User
	groups       []*models.Group
	cars         []*models.Car
	reservations []*models.Reservation
	events       []*models.Event
	stats        models.UserStats

	currentUserID string
	codes         map[string]string
}

// NewStore returns an empty store with nobody signed in.
func NewStore() *Store {
	return &Store{codes: make(map[string]string)}
}

func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.userByID(s.currentUserID); u != nil {
		return cloneUser(u)
	}
	return nil
}

func (s *Store) SetCurrentUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByID(userID) == nil {
		return fmt.Errorf("%w: user %q", ErrNotFound, userID)
	}
	s.currentUserID = userID
	return nil
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	for i, u := range s.users {
		out[i] = *cloneUser(u)
	}
	return out
}

func (s *Store) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = *cloneGroup(g)
	}
	return out
}

func (s *Store) Cars() []models.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Car, len(s.cars))
	for i, c := range s.cars {
		out[i] = *cloneCar(c)
	}
	return out
}

func (s *Store) Reservations() []models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reservation, len(s.reservations))
	for i, r := range s.reservations {
		out[i] = *s.hydrate(r)
	}
	return out
}

func (s *Store) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[i] = *e
	}
	return out
}

// The helpers below assume s.mu is held.

func (s *Store) userByID(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) userByEmail(email string) *models.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) carByID(id string) *models.Car {
	for _, c := range s.cars {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) groupByInviteCode(code string) *models.Group {
	for _, g := range s.groups {
		if g.InviteCode == code {
			return g
		}
	}
	return nil
}

func (s *Store) reservationByID(id string) *models.Reservation {
	for _, r := range s.reservations {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// actingUser resolves the user an operation runs as: the requested id when it
// names a known user, else the signed-in user.
func (s *Store) actingUser(requested string) *models.User {
	if requested != "" {
		if u := s.userByID(requested); u != nil {
			return u
		}
	}
	return s.userByID(s.currentUserID)
}

// hydrate copies a reservation and attaches the current car and user records.
func (s *Store) hydrate(r *models.Reservation) *models.Reservation {
	out := *r
	if c := s.carByID(r.CarID); c != nil {
		out.Car = cloneCar(c)
	}
	if u := s.userByID(r.UserID); u != nil {
		out.User = cloneUser(u)
	}
	return &out
}

func cloneUser(u *models.User) *models.User {
	out := *u
	return &out
}

func cloneGroup(g *models.Group) *models.Group {
	out := *g
	out.Members = append([]models.Member(nil), g.Members...)
	if out.Members == nil {
		out.Members = []models.Member{}
	}
	return &out
}

func cloneCar(c *models.Car) *models.Car {
	out := *c
	if c.Owner != nil {
		out.Owner = cloneUser(c.Owner)
	}
	return &out
}

func cloneEvent(e *models.Event) *models.Event {
	out := *e
	return &out
}
