/*
validator.go - The validation pipeline orchestrator

PURPOSE:
  Composes the individual checks into one ordered pipeline invoked on
  create and on edit of a vacation period:

    Received -> DateOrderChecked -> BusinessDaysChecked -> DuplicateChecked
             -> EntitlementChecked -> HeadcountChecked -> Admitted

  Any checked state may instead terminate in Rejected<reason>. The pipeline
  short-circuits: later checks never run once an earlier one fails.

ORDERING:
  duplicate -> entitlement -> headcount is deliberate. The employee-local
  checks are cheap and specific; the organization-wide headcount scan is the
  expensive one and runs last.

CONCURRENCY:
  Read-then-validate-then-write is NOT atomic. Between this validator's
  snapshot reads and the caller's eventual write, a concurrent writer could
  insert a conflicting period. Accepted limitation for the intended
  single-administrator usage; callers wanting stronger guarantees must
  serialize validate+write themselves (the api package does, with a single
  mutation lock).

SEE ALSO:
  - date.go, overlap.go, entitlement.go, headcount.go: The checks
  - verdict.go: Result shape
  - errors.go: Fatal conditions (storage, unknown employee)
*/
package vacation

import (
	"context"
)

// Validator runs the admission pipeline against snapshots read from Store.
// It holds no state of its own and performs no writes; persistence is the
// caller's job, and only on an admitting verdict.
type Validator struct {
	Store Store
}

// ValidateNewPeriod decides whether a new vacation period for employeeID
// over [start, end], charged against year, is admissible. A zero year
// defaults to start's calendar year.
func (v *Validator) ValidateNewPeriod(ctx context.Context, employeeID EmployeeID, start, end Date, year int) (Verdict, error) {
	return v.validate(ctx, "", employeeID, start, end, year)
}

// ValidateEditedPeriod revalidates an existing period's proposed new bounds
// against everything except its own prior state. Revalidating unchanged
// dates never conflicts with itself.
func (v *Validator) ValidateEditedPeriod(ctx context.Context, periodID PeriodID, employeeID EmployeeID, newStart, newEnd Date, year int) (Verdict, error) {
	if _, err := v.fetchPeriod(ctx, periodID); err != nil {
		return Verdict{}, err
	}
	return v.validate(ctx, periodID, employeeID, newStart, newEnd, year)
}

func (v *Validator) validate(ctx context.Context, excludeID PeriodID, employeeID EmployeeID, start, end Date, year int) (Verdict, error) {
	if year == 0 {
		year = start.Year()
	}

	// Date order
	if end.Before(start) {
		return rejected(ReasonInvalidRange), nil
	}

	// Business days
	requested := BusinessDays(start, end)
	if requested == 0 {
		return rejected(ReasonEmptyRange), nil
	}

	emp, err := v.fetchEmployee(ctx, employeeID)
	if err != nil {
		return Verdict{}, err
	}

	// Duplicate (employee-local)
	own, err := v.Store.GetEmployeePeriods(ctx, employeeID)
	if err != nil {
		return Verdict{}, &StorageError{Op: "get employee periods", Err: err}
	}
	if conflict, found := FindOverlap(own, start, end, excludeID); found {
		verdict := rejected(ReasonDuplicatePeriod)
		verdict.BusinessDays = requested
		verdict.Duplicate = &DuplicateDetails{
			ConflictStart: conflict.StartDate,
			ConflictEnd:   conflict.EndDate,
		}
		return verdict, nil
	}

	// Entitlement (employee-local)
	inYear, err := v.Store.GetPeriodsForEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return Verdict{}, &StorageError{Op: "get periods for year", Err: err}
	}
	used := UsedBusinessDays(inYear, excludeID)
	if EntitlementExceeded(emp.AnnualEntitlementDays, used, requested) {
		verdict := rejected(ReasonEntitlementExceeded)
		verdict.BusinessDays = requested
		verdict.Entitlement = &EntitlementDetails{
			Used:      used,
			Available: emp.AnnualEntitlementDays,
			Year:      year,
		}
		return verdict, nil
	}

	// Headcount (organization-wide)
	cfg, err := v.Store.GetConfig(ctx)
	if err != nil {
		return Verdict{}, &StorageError{Op: "get config", Err: err}
	}
	others, err := v.Store.GetAllPeriodsExcludingEmployee(ctx, employeeID)
	if err != nil {
		return Verdict{}, &StorageError{Op: "get organization periods", Err: err}
	}
	if day, found := HeadcountConflict(others, start, end, cfg.MaxSimultaneousVacationers); found {
		verdict := rejected(ReasonHeadcountExceeded)
		verdict.BusinessDays = requested
		verdict.Headcount = &HeadcountDetails{ConflictDate: day}
		return verdict, nil
	}

	return admitted(requested), nil
}

func (v *Validator) fetchEmployee(ctx context.Context, id EmployeeID) (*Employee, error) {
	emp, err := v.Store.GetEmployee(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "get employee", Err: err}
	}
	if emp == nil {
		return nil, &NotFoundError{Kind: "employee", ID: string(id)}
	}
	return emp, nil
}

func (v *Validator) fetchPeriod(ctx context.Context, id PeriodID) (*VacationPeriod, error) {
	p, err := v.Store.GetPeriod(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "get period", Err: err}
	}
	if p == nil {
		return nil, &NotFoundError{Kind: "period", ID: string(id)}
	}
	return p, nil
}
