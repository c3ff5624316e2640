/*
Package reports derives read-only summaries from the vacation schedule.

PURPOSE:
  Everything the admin screens show beside the booking forms: per-employee
  entitlement usage, upcoming vacations, and schedule congestion (how many
  people are away on each day, and how crowded each booked period is on
  average).

PRECISION:
  Day counts are integers, but average overlap across a period is
  fractional. decimal.Decimal keeps those means exact instead of
  accumulating float error across long windows.

NOTE:
  These are presentation inputs only. Nothing here gates a booking; the
  admission decisions live in the vacation package.

SEE ALSO:
  - vacation/validator.go: The decision logic these reports sit beside
*/
package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/vacation-scheduler/vacation"
)

// =============================================================================
// SERVICE - Reads snapshots from the store and derives report data
// =============================================================================

type Service struct {
	Store vacation.Store
}

// =============================================================================
// ENTITLEMENT SUMMARY - Used / available / remaining per employee
// =============================================================================

type EmployeeSummary struct {
	EmployeeID vacation.EmployeeID
	Name       string
	Year       int
	Used       int
	Available  int
	Remaining  int
}

// Summaries returns one row per employee for the given entitlement year.
// Remaining can go negative when the entitlement was lowered after bookings
// were made; the engine never retroactively re-validates.
func (s *Service) Summaries(ctx context.Context, year int) ([]EmployeeSummary, error) {
	employees, err := s.Store.ListEmployees(ctx)
	if err != nil {
		return nil, &vacation.StorageError{Op: "list employees", Err: err}
	}

	var rows []EmployeeSummary
	for _, e := range employees {
		periods, err := s.Store.GetPeriodsForEmployeeAndYear(ctx, e.ID, year)
		if err != nil {
			return nil, &vacation.StorageError{Op: "get periods for year", Err: err}
		}
		used := vacation.UsedBusinessDays(periods, "")
		rows = append(rows, EmployeeSummary{
			EmployeeID: e.ID,
			Name:       e.Name,
			Year:       year,
			Used:       used,
			Available:  e.AnnualEntitlementDays,
			Remaining:  e.AnnualEntitlementDays - used,
		})
	}
	return rows, nil
}

// =============================================================================
// UPCOMING VACATIONS - Periods starting on or after a reference date
// =============================================================================

type UpcomingVacation struct {
	Period       vacation.VacationPeriod
	EmployeeName string
}

// Upcoming returns periods starting on or after from, soonest first.
// Orphaned periods (deleted employee) are listed with an empty name.
func (s *Service) Upcoming(ctx context.Context, from vacation.Date) ([]UpcomingVacation, error) {
	periods, err := s.Store.ListPeriods(ctx)
	if err != nil {
		return nil, &vacation.StorageError{Op: "list periods", Err: err}
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}

	var upcoming []UpcomingVacation
	for _, p := range periods {
		if p.StartDate.AfterOrEqual(from) {
			upcoming = append(upcoming, UpcomingVacation{
				Period:       p,
				EmployeeName: names[p.EmployeeID],
			})
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Period.StartDate.Before(upcoming[j].Period.StartDate)
	})
	return upcoming, nil
}

// =============================================================================
// CONGESTION - Per-day concurrency and per-period average overlap
// =============================================================================

type DayLoad struct {
	Date  vacation.Date
	Count int
}

// LoadBand classifies how crowded a period is, using the thresholds the
// schedule chart colors by: below 1.5 average concurrent vacationers is low,
// below 2.5 moderate, else high.
type LoadBand string

const (
	LoadLow      LoadBand = "low"
	LoadModerate LoadBand = "moderate"
	LoadHigh     LoadBand = "high"
)

var (
	moderateThreshold = decimal.NewFromFloat(1.5)
	highThreshold     = decimal.NewFromFloat(2.5)
)

type PeriodLoad struct {
	Period         vacation.VacationPeriod
	EmployeeName   string
	AverageOverlap decimal.Decimal
	Band           LoadBand
}

type CongestionReport struct {
	// Daily holds concurrent-vacationer counts for every calendar day from
	// the earliest start to the latest end across all periods.
	Daily []DayLoad

	// Periods holds one row per booked period with its mean overlap.
	Periods []PeriodLoad
}

// Congestion computes the full schedule congestion report. Counts here span
// all calendar days, not just business days: the report mirrors the booked
// ranges as users see them on a calendar.
func (s *Service) Congestion(ctx context.Context) (*CongestionReport, error) {
	periods, err := s.Store.ListPeriods(ctx)
	if err != nil {
		return nil, &vacation.StorageError{Op: "list periods", Err: err}
	}
	if len(periods) == 0 {
		return &CongestionReport{}, nil
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}

	lo, hi := periods[0].StartDate, periods[0].EndDate
	for _, p := range periods[1:] {
		lo = vacation.MinDate(lo, p.StartDate)
		hi = vacation.MaxDate(hi, p.EndDate)
	}

	counts := make(map[vacation.Date]int)
	for _, p := range periods {
		for d := p.StartDate; d.BeforeOrEqual(p.EndDate); d = d.AddDays(1) {
			counts[d]++
		}
	}

	var daily []DayLoad
	for d := lo; d.BeforeOrEqual(hi); d = d.AddDays(1) {
		daily = append(daily, DayLoad{Date: d, Count: counts[d]})
	}

	loads := make([]PeriodLoad, 0, len(periods))
	for _, p := range periods {
		sum, days := 0, 0
		for d := p.StartDate; d.BeforeOrEqual(p.EndDate); d = d.AddDays(1) {
			sum += counts[d]
			days++
		}
		avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(days)))
		loads = append(loads, PeriodLoad{
			Period:         p,
			EmployeeName:   names[p.EmployeeID],
			AverageOverlap: avg,
			Band:           bandFor(avg),
		})
	}

	return &CongestionReport{Daily: daily, Periods: loads}, nil
}

func bandFor(avg decimal.Decimal) LoadBand {
	switch {
	case avg.LessThan(moderateThreshold):
		return LoadLow
	case avg.LessThan(highThreshold):
		return LoadModerate
	default:
		return LoadHigh
	}
}

func (s *Service) employeeNames(ctx context.Context) (map[vacation.EmployeeID]string, error) {
	employees, err := s.Store.ListEmployees(ctx)
	if err != nil {
		return nil, &vacation.StorageError{Op: "list employees", Err: err}
	}
	names := make(map[vacation.EmployeeID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names, nil
}
