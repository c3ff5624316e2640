package vacation

// =============================================================================
// OVERLAP DETECTOR - Per-employee duplicate-booking check
// =============================================================================

// FindOverlap scans one employee's existing periods for closed-interval
// intersection with [start, end]. The record matching excludeID is skipped,
// which lets an edit be revalidated against everything but its own prior
// state. Returns the first intersecting period found; any match is an
// acceptable answer since the result only feeds the rejection message.
func FindOverlap(existing []VacationPeriod, start, end Date, excludeID PeriodID) (VacationPeriod, bool) {
	for _, p := range existing {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		if p.Overlaps(start, end) {
			return p, true
		}
	}
	return VacationPeriod{}, false
}
