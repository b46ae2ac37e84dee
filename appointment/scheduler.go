package appointment

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

const msgInvalidTime = "Appointment time must be on the hour or half past."

// Outcome classifies a scheduling decision.
type Outcome string

const (
	OutcomeAccepted      Outcome = "accepted"
	OutcomeDuplicateDate Outcome = "duplicate_date"
	OutcomeInvalidTime   Outcome = "invalid_time"
)

// Scheduler decides whether appointments may be committed for one user and
// owns that user's Store. Validation and commit run under a single lock so the
// one-appointment-per-day rule holds for concurrent requests.
type Scheduler struct {
	mu     sync.Mutex
	userID string
	store  *Store
}

func NewScheduler(userID string) *Scheduler {
	return &Scheduler{
		userID: userID,
		store:  NewStore(),
	}
}

func (s *Scheduler) UserID() string {
	return s.userID
}

// ScheduleAppointment validates req against the user's existing appointments and
// commits it when both rules pass. The duplicate date check runs first.
func (s *Scheduler) ScheduleAppointment(req ScheduleRequest) ScheduleResponse {
	resp, _ := s.schedule(req)
	return resp
}

// Schedule is ScheduleAppointment that also reports which rule decided the outcome.
func (s *Scheduler) Schedule(req ScheduleRequest) (ScheduleResponse, Outcome) {
	return s.schedule(req)
}

func (s *Scheduler) schedule(req ScheduleRequest) (ScheduleResponse, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := DateOf(req.AppointmentTime)
	if s.store.HasAppointmentOn(date) {
		return rejected(fmt.Sprintf("User already has existing appointment on %s", date)), OutcomeDuplicateDate
	}

	if !IsAppointmentTimeValid(req.AppointmentTime) {
		return rejected(msgInvalidTime), OutcomeInvalidTime
	}

	s.store.Put(NewAppointment(req.UserID, req.AppointmentTime))
	return accepted(), OutcomeAccepted
}

func (s *Scheduler) HasAppointmentOn(date Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.HasAppointmentOn(date)
}

// AllAppointments returns a snapshot of the user's appointments ordered by start.
func (s *Scheduler) AllAppointments() Listing {
	s.mu.Lock()
	appointments := s.store.Values()
	s.mu.Unlock()

	slices.SortFunc(appointments, func(a, b Appointment) int {
		return a.Start.Compare(b.Start)
	})
	return Listing{Appointments: appointments}
}

// IsAppointmentTimeValid reports whether t falls exactly on the hour or exactly
// half past, down to the nanosecond.
func IsAppointmentTimeValid(t time.Time) bool {
	y, m, d := t.Date()
	onTheHour := time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
	halfPast := time.Date(y, m, d, t.Hour(), 30, 0, 0, t.Location())
	return t.Equal(onTheHour) || t.Equal(halfPast)
}
