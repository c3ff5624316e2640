package vacation

// =============================================================================
// HEADCOUNT-CONFLICT DETECTOR - Organization-wide concurrency check
// =============================================================================

// HeadcountConflict computes per-business-day concurrent-vacationer counts
// across the proposed window [start, end] and returns the earliest date whose
// count meets or exceeds cap.
//
// Each business day in the window starts at 1: the period under evaluation
// occupies its own days. Every period in others (which must not contain the
// requesting employee's own bookings) contributes +1 to each business day of
// its non-empty intersection with the window.
//
// The returned date is chronologically first among offending days. That is a
// correctness property, not a tie-break convenience: the date is surfaced to
// the end user as the specific conflict point.
//
// A window containing no business days yields no conflict.
func HeadcountConflict(others []VacationPeriod, start, end Date, cap int) (Date, bool) {
	counts := make(map[Date]int)
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsBusinessDay() {
			counts[d] = 1
		}
	}
	if len(counts) == 0 {
		return Date{}, false
	}

	for _, p := range others {
		lo := MaxDate(p.StartDate, start)
		hi := MinDate(p.EndDate, end)
		if hi.Before(lo) {
			continue
		}
		for d := lo; d.BeforeOrEqual(hi); d = d.AddDays(1) {
			if d.IsBusinessDay() {
				counts[d]++
			}
		}
	}

	// Ascending-date scan keeps the answer deterministic.
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if n, ok := counts[d]; ok && n >= cap {
			return d, true
		}
	}
	return Date{}, false
}
