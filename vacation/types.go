/*
Package vacation provides the vacation-scheduling validation engine.

PURPOSE:
  This package contains the domain types and decision logic that determine
  whether a proposed vacation period is admissible: business-day counting,
  per-employee overlap detection, organization-wide headcount conflict
  detection, and annual entitlement accounting.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: A roster member with an annual business-day entitlement
  - VacationPeriod: An inclusive date range booked against a year
  - Config: The organization-wide simultaneous-vacationer cap
  - Employee/Period IDs: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Statelessness: Every validation re-derives its answer from a fresh
     snapshot of the roster and booked periods; no ambient globals.
  2. Explicit inputs: Employee id, dates, snapshot, and cap are all passed
     through call signatures, never read from session state.
  3. Structured verdicts: Rejections carry reason codes plus contextual data
     so the presentation layer can localize them.

USAGE:
  v := &vacation.Validator{Store: store}
  verdict, err := v.ValidateNewPeriod(ctx, empID, start, end, 2024)
  if err != nil { ... storage failed, no verdict ... }
  if !verdict.Admitted { ... verdict.Reason, verdict.Details ... }

SEE ALSO:
  - date.go: Date type and business-day calculator
  - overlap.go, headcount.go, entitlement.go: Individual checks
  - validator.go: Validation pipeline orchestrator
  - store.go: Storage collaborator interface
*/
package vacation

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type PeriodID string

// =============================================================================
// EMPLOYEE - Roster member with annual entitlement
// =============================================================================

type Employee struct {
	ID       EmployeeID
	Name     string
	HireDate Date

	// AnnualEntitlementDays is the number of business days granted per year.
	// Mutable by administrators; changes never retroactively invalidate
	// past bookings.
	AnnualEntitlementDays int
}

// =============================================================================
// VACATION PERIOD - Inclusive date range charged against a year
// =============================================================================

type VacationPeriod struct {
	ID         PeriodID
	EmployeeID EmployeeID

	// Inclusive bounds; StartDate <= EndDate for any persisted period.
	StartDate Date
	EndDate   Date

	// BusinessDays is derived from the bounds at creation/update time and
	// recomputed whenever either bound changes. Never edited independently.
	BusinessDays int

	// Year is the entitlement year this booking is charged against.
	Year int
}

// Overlaps reports closed-interval intersection with [start, end].
// Touching endpoints count as overlap.
func (p VacationPeriod) Overlaps(start, end Date) bool {
	return !(p.EndDate.Before(start) || p.StartDate.After(end))
}

// NewVacationPeriod builds a period with derived fields populated. Year
// defaults to the calendar year of start when zero.
func NewVacationPeriod(employeeID EmployeeID, start, end Date, year int) VacationPeriod {
	if year == 0 {
		year = start.Year()
	}
	return VacationPeriod{
		EmployeeID:   employeeID,
		StartDate:    start,
		EndDate:      end,
		BusinessDays: BusinessDays(start, end),
		Year:         year,
	}
}

// =============================================================================
// CONFIGURATION - Singleton organization-wide settings
// =============================================================================

type Config struct {
	// MaxSimultaneousVacationers caps how many employees may be on vacation
	// on any single business day. A change takes effect for subsequent
	// validations only; existing bookings are never re-validated.
	MaxSimultaneousVacationers int
}
