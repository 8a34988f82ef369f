package model

import "time"

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultColor is the hex color applied to appointments created without one.
const DefaultColor = "#0b57d0"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Appointment struct {
	ID          string
	UserID      string
	Title       string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Start       time.Time
	End         time.Time
	Location    string
	MeetingLink string
	Notes       string
	Color       string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID        string
	UserID    string
	Title     string
	Day       time.Time
	Priority  string
	Done      bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	ID            string
	UserID        string
	AppointmentID string
	AmountCents   int64
	Currency      string
	Status        string
	IntentID      string
	Paid          bool
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move between statuses.
// Forward-only: scheduled → confirmed → completed. Cancelled is reachable
// from any non-terminal state. Completed and cancelled are terminal.
// A same-status update is a no-op and always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}
