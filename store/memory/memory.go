// Package memory provides an in-memory vacation.Store (for testing/dev).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/vacation-scheduler/vacation"
)

// =============================================================================
// MEMORY STORE - Mutex-guarded maps, assigns ids on save
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[vacation.EmployeeID]vacation.Employee
	periods   map[vacation.PeriodID]vacation.VacationPeriod
	config    vacation.Config
	nextID    int
}

func New() *Store {
	return &Store{
		employees: make(map[vacation.EmployeeID]vacation.Employee),
		periods:   make(map[vacation.PeriodID]vacation.VacationPeriod),
		config:    vacation.Config{MaxSimultaneousVacationers: 1},
	}
}

func (s *Store) GetEmployee(_ context.Context, id vacation.EmployeeID) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]vacation.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) SaveEmployee(_ context.Context, e vacation.Employee) (vacation.EmployeeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		s.nextID++
		e.ID = vacation.EmployeeID(fmt.Sprintf("emp-%d", s.nextID))
	}
	s.employees[e.ID] = e
	return e.ID, nil
}

func (s *Store) UpdateEmployee(_ context.Context, e vacation.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.ID]; !ok {
		return &vacation.NotFoundError{Kind: "employee", ID: string(e.ID)}
	}
	s.employees[e.ID] = e
	return nil
}

// DeleteEmployee cascades the employee's vacation periods.
func (s *Store) DeleteEmployee(_ context.Context, id vacation.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.employees, id)
	for pid, p := range s.periods {
		if p.EmployeeID == id {
			delete(s.periods, pid)
		}
	}
	return nil
}

func (s *Store) GetPeriod(_ context.Context, id vacation.PeriodID) (*vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.periods[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) GetEmployeePeriods(_ context.Context, employeeID vacation.EmployeeID) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(p vacation.VacationPeriod) bool { return p.EmployeeID == employeeID }), nil
}

func (s *Store) GetAllPeriodsExcludingEmployee(_ context.Context, employeeID vacation.EmployeeID) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(p vacation.VacationPeriod) bool { return p.EmployeeID != employeeID }), nil
}

func (s *Store) GetPeriodsForEmployeeAndYear(_ context.Context, employeeID vacation.EmployeeID, year int) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(p vacation.VacationPeriod) bool {
		return p.EmployeeID == employeeID && p.Year == year
	}), nil
}

func (s *Store) ListPeriods(_ context.Context) ([]vacation.VacationPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(vacation.VacationPeriod) bool { return true }), nil
}

func (s *Store) SavePeriod(_ context.Context, p vacation.VacationPeriod) (vacation.PeriodID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		s.nextID++
		p.ID = vacation.PeriodID(fmt.Sprintf("vac-%d", s.nextID))
	}
	s.periods[p.ID] = p
	return p.ID, nil
}

func (s *Store) UpdatePeriod(_ context.Context, p vacation.VacationPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.periods[p.ID]; !ok {
		return &vacation.NotFoundError{Kind: "period", ID: string(p.ID)}
	}
	s.periods[p.ID] = p
	return nil
}

// DeletePeriod is unconditional: removing a booking only relaxes constraints.
func (s *Store) DeletePeriod(_ context.Context, id vacation.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.periods, id)
	return nil
}

func (s *Store) GetConfig(_ context.Context) (vacation.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, nil
}

func (s *Store) UpdateConfig(_ context.Context, c vacation.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = c
	return nil
}

// filter returns matching periods sorted by start date then id, so callers
// see a stable order.
func (s *Store) filter(keep func(vacation.VacationPeriod) bool) []vacation.VacationPeriod {
	var result []vacation.VacationPeriod
	for _, p := range s.periods {
		if keep(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
