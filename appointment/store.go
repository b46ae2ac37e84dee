package appointment

import (
	"github.com/samber/lo"
)

// Store holds at most one appointment per calendar date for a single user.
// It is not safe for concurrent use; Scheduler serializes access to it.
type Store struct {
	appointments map[Date]Appointment
}

func NewStore() *Store {
	return &Store{appointments: make(map[Date]Appointment)}
}

func (s *Store) HasAppointmentOn(date Date) bool {
	_, ok := s.appointments[date]
	return ok
}

// Put inserts a, overwriting any appointment already stored on the same date.
func (s *Store) Put(a Appointment) {
	s.appointments[a.Date()] = a
}

// Values returns a fresh slice of every stored appointment.
func (s *Store) Values() []Appointment {
	return lo.Values(s.appointments)
}

func (s *Store) Len() int {
	return len(s.appointments)
}
