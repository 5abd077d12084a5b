package utils

import (
	"github.com/bookvista/bookvista-api/models"
)

// DedupeSlots collapses slots sharing the same (start,end) pair, keeping
// the first occurrence. Input order is preserved.
func DedupeSlots(slots []models.TimeSlot) []models.TimeSlot {
	seen := make(map[string]bool, len(slots))
	out := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		key := s.Label()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
