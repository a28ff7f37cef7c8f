package domain

import "github.com/m04kA/SMC-ConsultationService/pkg/types"

// Slot represents a candidate bookable start time plus duration.
// Computed, never persisted.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Duration returns the slot length in minutes
func (s *Slot) Duration() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
