/*
Package sqlite provides a SQLite-backed implementation of vacation.Store.

PURPOSE:
  Persists the roster, vacation periods, and the singleton configuration
  row. In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  employees:        Roster with annual entitlement
  vacation_periods: Booked periods with cached business-day counts
  config:           Single-row organization settings

INDEXES:
  idx_periods_employee:      Per-employee duplicate/entitlement lookups
  idx_periods_employee_year: Entitlement-year sums
  idx_periods_dates:         Headcount window scans

CASCADE:
  Deleting an employee deletes that employee's vacation periods in the
  same transaction. The validation engine tolerates orphans either way.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/vacations.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - vacation/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/vacation-scheduler/vacation"
)

// Store implements vacation.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema and seeds the config row.
func (s *Store) migrate() error {
	schema := `
	-- Roster
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		annual_entitlement_days INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Booked periods (inclusive bounds, business days cached)
	CREATE TABLE IF NOT EXISTS vacation_periods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		business_days INTEGER NOT NULL,
		year INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_periods_employee
		ON vacation_periods(employee_id);
	CREATE INDEX IF NOT EXISTS idx_periods_employee_year
		ON vacation_periods(employee_id, year);
	CREATE INDEX IF NOT EXISTS idx_periods_dates
		ON vacation_periods(start_date, end_date);

	-- Organization settings (single row, id = 1)
	CREATE TABLE IF NOT EXISTS config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		max_simultaneous_vacationers INTEGER NOT NULL
	);

	INSERT OR IGNORE INTO config (id, max_simultaneous_vacationers) VALUES (1, 1);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// SaveEmployee inserts an employee and returns the assigned id.
func (s *Store) SaveEmployee(ctx context.Context, e vacation.Employee) (vacation.EmployeeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (name, hire_date, annual_entitlement_days, created_at)
		VALUES (?, ?, ?, ?)`,
		e.Name,
		e.HireDate.String(),
		e.AnnualEntitlementDays,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return vacation.EmployeeID(fmt.Sprintf("%d", id)), nil
}

// GetEmployee retrieves an employee by ID. Returns (nil, nil) when missing.
func (s *Store) GetEmployee(ctx context.Context, id vacation.EmployeeID) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e vacation.Employee
	var hireDate string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, hire_date, annual_entitlement_days FROM employees WHERE id = ?",
		string(id),
	).Scan(&e.ID, &e.Name, &hireDate, &e.AnnualEntitlementDays)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.HireDate, _ = vacation.ParseDate(hireDate)
	return &e, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, hire_date, annual_entitlement_days FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []vacation.Employee
	for rows.Next() {
		var e vacation.Employee
		var hireDate string
		if err := rows.Scan(&e.ID, &e.Name, &hireDate, &e.AnnualEntitlementDays); err != nil {
			return nil, err
		}
		e.HireDate, _ = vacation.ParseDate(hireDate)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpdateEmployee updates an employee in place.
func (s *Store) UpdateEmployee(ctx context.Context, e vacation.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET name = ?, hire_date = ?, annual_entitlement_days = ?
		WHERE id = ?`,
		e.Name, e.HireDate.String(), e.AnnualEntitlementDays, string(e.ID),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &vacation.NotFoundError{Kind: "employee", ID: string(e.ID)}
	}
	return nil
}

// DeleteEmployee removes an employee and cascades their vacation periods.
func (s *Store) DeleteEmployee(ctx context.Context, id vacation.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vacation_periods WHERE employee_id = ?", string(id)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", string(id)); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// VACATION PERIOD STORE
// =============================================================================

// SavePeriod inserts a vacation period and returns the assigned id.
func (s *Store) SavePeriod(ctx context.Context, p vacation.VacationPeriod) (vacation.PeriodID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO vacation_periods (employee_id, start_date, end_date, business_days, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(p.EmployeeID),
		p.StartDate.String(),
		p.EndDate.String(),
		p.BusinessDays,
		p.Year,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return vacation.PeriodID(fmt.Sprintf("%d", id)), nil
}

// GetPeriod retrieves a period by ID. Returns (nil, nil) when missing.
func (s *Store) GetPeriod(ctx context.Context, id vacation.PeriodID) (*vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryPeriods(ctx, selectPeriods+" WHERE id = ?", string(id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetEmployeePeriods returns all periods belonging to one employee.
func (s *Store) GetEmployeePeriods(ctx context.Context, employeeID vacation.EmployeeID) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPeriods(ctx,
		selectPeriods+" WHERE employee_id = ? ORDER BY start_date", string(employeeID))
}

// GetAllPeriodsExcludingEmployee returns every other employee's periods,
// the snapshot the headcount check runs against.
func (s *Store) GetAllPeriodsExcludingEmployee(ctx context.Context, employeeID vacation.EmployeeID) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPeriods(ctx,
		selectPeriods+" WHERE employee_id != ? ORDER BY start_date", string(employeeID))
}

// GetPeriodsForEmployeeAndYear returns one employee's periods charged
// against the given entitlement year.
func (s *Store) GetPeriodsForEmployeeAndYear(ctx context.Context, employeeID vacation.EmployeeID, year int) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPeriods(ctx,
		selectPeriods+" WHERE employee_id = ? AND year = ? ORDER BY start_date",
		string(employeeID), year)
}

// ListPeriods returns all periods, newest start date first, matching the
// admin listing order.
func (s *Store) ListPeriods(ctx context.Context) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPeriods(ctx, selectPeriods+" ORDER BY start_date DESC")
}

// UpdatePeriod replaces a period's bounds and derived fields.
func (s *Store) UpdatePeriod(ctx context.Context, p vacation.VacationPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE vacation_periods
		SET start_date = ?, end_date = ?, business_days = ?, year = ?
		WHERE id = ?`,
		p.StartDate.String(), p.EndDate.String(), p.BusinessDays, p.Year, string(p.ID),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &vacation.NotFoundError{Kind: "period", ID: string(p.ID)}
	}
	return nil
}

// DeletePeriod removes a period. Deletion never needs validation: removing
// a booking can only relax constraints.
func (s *Store) DeletePeriod(ctx context.Context, id vacation.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM vacation_periods WHERE id = ?", string(id))
	return err
}

const selectPeriods = "SELECT id, employee_id, start_date, end_date, business_days, year FROM vacation_periods"

func (s *Store) queryPeriods(ctx context.Context, query string, args ...any) ([]vacation.VacationPeriod, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []vacation.VacationPeriod
	for rows.Next() {
		var p vacation.VacationPeriod
		var start, end string
		if err := rows.Scan(&p.ID, &p.EmployeeID, &start, &end, &p.BusinessDays, &p.Year); err != nil {
			return nil, err
		}
		if p.StartDate, err = vacation.ParseDate(start); err != nil {
			return nil, fmt.Errorf("corrupt start_date for period %s: %w", p.ID, err)
		}
		if p.EndDate, err = vacation.ParseDate(end); err != nil {
			return nil, fmt.Errorf("corrupt end_date for period %s: %w", p.ID, err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// =============================================================================
// CONFIG STORE
// =============================================================================

// GetConfig reads the singleton configuration row.
func (s *Store) GetConfig(ctx context.Context) (vacation.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c vacation.Config
	err := s.db.QueryRowContext(ctx,
		"SELECT max_simultaneous_vacationers FROM config WHERE id = 1",
	).Scan(&c.MaxSimultaneousVacationers)
	return c, err
}

// UpdateConfig replaces the singleton configuration row. The new cap takes
// effect for subsequent validations only.
func (s *Store) UpdateConfig(ctx context.Context, c vacation.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"UPDATE config SET max_simultaneous_vacationers = ? WHERE id = 1",
		c.MaxSimultaneousVacationers,
	)
	return err
}

// Reset clears all data and reseeds the config row (dev/demo only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM vacation_periods;
		DELETE FROM employees;
		UPDATE config SET max_simultaneous_vacationers = 1 WHERE id = 1;
	`)
	return err
}
