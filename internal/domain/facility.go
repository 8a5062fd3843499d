package domain

// Facility is the read model of a shared community facility (pool,
// court, hall). Owned by the facility-management service; this service
// never mutates it. SlotMinutes and Capacity arrive with defaults
// already resolved at the integration boundary.
type Facility struct {
	ID              int64
	Name            string
	OperatingWindow string // "HH:MM-HH:MM", parsed by ParseOperatingWindow
	SlotMinutes     int
	Capacity        int
	OperatorIDs     []int64
}

// IsOperator returns true if the given user manages this facility
func (f *Facility) IsOperator(userID int64) bool {
	for _, id := range f.OperatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}
