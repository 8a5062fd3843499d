package domain

// QuotaState is the derived daily booking budget of one resident on one
// facility for one date. Never stored: always recomputed from the
// booking set so it cannot drift from the ledger.
type QuotaState struct {
	UsedMinutes      int
	RemainingMinutes int
}

// ComputeQuota derives the quota state from the full booking set of a
// facility/date. Only the resident's own confirmed bookings consume
// budget; cancelled bookings return their minutes.
func ComputeQuota(userID int64, bookings []*Booking) QuotaState {
	used := 0
	for _, b := range bookings {
		if b.UserID != userID {
			continue
		}
		if !b.IsConfirmed() {
			continue
		}
		used += b.DurationMinutes
	}

	remaining := DailyQuotaMinutes - used
	if remaining < 0 {
		remaining = 0
	}

	return QuotaState{
		UsedMinutes:      used,
		RemainingMinutes: remaining,
	}
}

// Allows reports whether a booking of the given duration still fits
// within the remaining budget
func (q QuotaState) Allows(minutes int) bool {
	return minutes <= q.RemainingMinutes
}

// RemainingBreakdown returns the remaining budget split into full hours
// and leftover minutes for display collaborators
func (q QuotaState) RemainingBreakdown() (hours, minutes int) {
	return q.RemainingMinutes / 60, q.RemainingMinutes % 60
}
