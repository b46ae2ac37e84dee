package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Duration is the fixed length of every appointment.
const Duration = 30 * time.Minute

// LocalDateTimeLayout is the wire layout for appointment times in UTC.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// OffsetDateTimeLayout is the wire layout for times that carry a non-UTC offset.
const OffsetDateTimeLayout = "2006-01-02T15:04:05Z07:00"

var ErrInvalidAppointmentTime = errors.New("invalid appointment time")

var inputLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LocalTime is a timestamp carried over the wire as an ISO-8601 local date-time.
type LocalTime struct {
	time.Time
}

func ParseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAppointmentTime, s)
}

func (l LocalTime) MarshalJSON() ([]byte, error) {
	if l.Location() == time.UTC {
		return json.Marshal(l.Format(LocalDateTimeLayout))
	}
	return json.Marshal(l.Format(OffsetDateTimeLayout))
}

func (l *LocalTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return fmt.Errorf("%w: null", ErrInvalidAppointmentTime)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAppointmentTime, err)
	}
	t, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	l.Time = t
	return nil
}

type Appointment struct {
	Start  time.Time
	End    time.Time
	UserID string
}

// NewAppointment builds an appointment starting at start for userID.
func NewAppointment(userID string, start time.Time) Appointment {
	return Appointment{
		Start:  start,
		End:    start.Add(Duration),
		UserID: userID,
	}
}

// Date returns the calendar date the appointment is keyed by.
func (a Appointment) Date() Date {
	return DateOf(a.Start)
}

type appointmentJSON struct {
	Start  LocalTime `json:"start"`
	End    LocalTime `json:"end"`
	UserID string    `json:"userId"`
}

func (a Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(appointmentJSON{
		Start:  LocalTime{a.Start},
		End:    LocalTime{a.End},
		UserID: a.UserID,
	})
}

type ScheduleRequest struct {
	AppointmentTime time.Time
	UserID          string
}

type ScheduleResponse struct {
	AppointmentAccepted bool    `json:"appointmentAccepted"`
	StatusMessage       *string `json:"statusMessage"`
}

func accepted() ScheduleResponse {
	return ScheduleResponse{AppointmentAccepted: true}
}

func rejected(msg string) ScheduleResponse {
	return ScheduleResponse{StatusMessage: &msg}
}

// Listing is the result of reading a user's appointments. An empty listing is a
// normal outcome, not an error.
type Listing struct {
	Appointments []Appointment
}

func (l Listing) IsEmpty() bool {
	return len(l.Appointments) == 0
}
