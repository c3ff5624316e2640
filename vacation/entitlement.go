package vacation

// =============================================================================
// ENTITLEMENT CHECKER - Flat annual business-day ceiling
// =============================================================================

// EntitlementExceeded reports whether booking requestedDays on top of
// usedInYear would exceed the flat annual entitlement. No rounding or
// proration: the ceiling is an integer per year.
func EntitlementExceeded(annualEntitlement, usedInYear, requestedDays int) bool {
	return usedInYear+requestedDays > annualEntitlement
}

// UsedBusinessDays sums the cached business-day counts of the given periods,
// skipping the record matching excludeID so an edit is charged only once.
// Callers pass the employee's periods already filtered to the target year.
func UsedBusinessDays(periods []VacationPeriod, excludeID PeriodID) int {
	total := 0
	for _, p := range periods {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		total += p.BusinessDays
	}
	return total
}
