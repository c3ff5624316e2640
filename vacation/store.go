package vacation

import "context"

// =============================================================================
// STORE - Storage collaborator interface
// =============================================================================

// Store is the relational-storage collaborator the engine reads from. All
// reads are synchronous and may fail; the validator propagates any failure
// as a StorageError rather than assuming a verdict.
//
// Implementations:
//   - store/memory: mutex-guarded maps for tests and development
//   - store/sqlite: SQLite-backed persistence
type Store interface {
	// Employees
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	SaveEmployee(ctx context.Context, e Employee) (EmployeeID, error)
	UpdateEmployee(ctx context.Context, e Employee) error
	// DeleteEmployee removes the employee and cascades their vacation
	// periods. The validator tolerates orphans regardless; the cascade is
	// this implementation family's policy, not an engine requirement.
	DeleteEmployee(ctx context.Context, id EmployeeID) error

	// Vacation periods
	GetPeriod(ctx context.Context, id PeriodID) (*VacationPeriod, error)
	GetEmployeePeriods(ctx context.Context, employeeID EmployeeID) ([]VacationPeriod, error)
	GetAllPeriodsExcludingEmployee(ctx context.Context, employeeID EmployeeID) ([]VacationPeriod, error)
	GetPeriodsForEmployeeAndYear(ctx context.Context, employeeID EmployeeID, year int) ([]VacationPeriod, error)
	ListPeriods(ctx context.Context) ([]VacationPeriod, error)
	SavePeriod(ctx context.Context, p VacationPeriod) (PeriodID, error)
	UpdatePeriod(ctx context.Context, p VacationPeriod) error
	DeletePeriod(ctx context.Context, id PeriodID) error

	// Configuration (singleton row)
	GetConfig(ctx context.Context) (Config, error)
	UpdateConfig(ctx context.Context, c Config) error
}
