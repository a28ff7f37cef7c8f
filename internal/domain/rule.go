package domain

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// RuleType determines how an availability rule applies to a calendar date
type RuleType string

const (
	// RuleWeekly recurs every matching weekday
	RuleWeekly RuleType = "weekly"
	// RuleDateOverride applies to one specific date and replaces weekly rules for it
	RuleDateOverride RuleType = "date_override"
	// RuleBlock marks an explicit unavailability window; always wins
	RuleBlock RuleType = "block"
)

// AvailabilityRule describes when bookings are structurally allowed or forbidden.
// Weekly rules carry DayOfWeek; date_override and block rules carry SpecificDate.
// A nil ServiceID means the rule applies to all consultation types.
type AvailabilityRule struct {
	ID           int64
	RuleType     RuleType
	DayOfWeek    *int       // 0=Sunday ... 6=Saturday, weekly rules only
	SpecificDate *time.Time // date_override and block rules only
	StartTime    types.TimeString
	EndTime      types.TimeString // half-open: [StartTime, EndTime)
	IsAvailable  bool             // weekly/date_override only; blocks are always closed
	ServiceID    *int64
	Priority     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesToDate reports whether the rule is a candidate for the given date
func (r *AvailabilityRule) AppliesToDate(date time.Time) bool {
	switch r.RuleType {
	case RuleWeekly:
		return r.DayOfWeek != nil && *r.DayOfWeek == int(date.Weekday())
	case RuleDateOverride, RuleBlock:
		return r.SpecificDate != nil && sameDate(*r.SpecificDate, date)
	default:
		return false
	}
}

// AppliesToService reports whether the rule is a candidate for the given service.
// Rules without a service restriction apply to every service.
func (r *AvailabilityRule) AppliesToService(serviceID int64) bool {
	return r.ServiceID == nil || *r.ServiceID == serviceID
}

// IsServiceSpecific returns true if the rule is restricted to one service
func (r *AvailabilityRule) IsServiceSpecific() bool {
	return r.ServiceID != nil
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
