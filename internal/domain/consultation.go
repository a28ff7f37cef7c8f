package domain

import "time"

// ConsultationStatus represents the lifecycle state of a consultation type
type ConsultationStatus string

const (
	ConsultationActive   ConsultationStatus = "active"
	ConsultationInactive ConsultationStatus = "inactive"
)

// ConsultationType represents a bookable service.
// Read-only from the availability layer's point of view.
type ConsultationType struct {
	ID                  int64
	Name                string
	Description         *string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Price               float64
	Status              ConsultationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the consultation type can be booked.
// Inactive types are excluded from availability computation entirely.
func (c *ConsultationType) IsActive() bool {
	return c.Status == ConsultationActive
}
