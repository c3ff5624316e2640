/*
handlers.go - HTTP API handlers for the vacation scheduler

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/login                   Password gate -> session token

  Employees:
    GET    /api/employees               List roster
    POST   /api/employees               Add employee
    GET    /api/employees/{id}          Get employee
    PUT    /api/employees/{id}          Update employee
    DELETE /api/employees/{id}          Remove employee (cascades bookings)
    GET    /api/employees/{id}/summary  Entitlement usage for a year

  Vacations:
    GET    /api/vacations               List bookings
    POST   /api/vacations               Validate + book
    PUT    /api/vacations/{id}          Revalidate + update
    DELETE /api/vacations/{id}          Delete (never validated)
    POST   /api/vacations/validate      Dry-run validation, no persistence

  Config:
    GET    /api/config                  Current headcount cap
    PUT    /api/config                  Change cap (takes effect immediately)

  Reports:
    GET    /api/reports/summary         Used/available/remaining per employee
    GET    /api/reports/upcoming        Bookings starting on/after today
    GET    /api/reports/congestion      Per-day load + per-period averages

LANGUAGE:
  Messages are localized from the verdict's structured data. ?lang=pt|en,
  defaulting to pt (the tool's home locale).

ERROR HANDLING:
  - 400: Malformed input (bad dates, missing fields)
  - 401: Missing/invalid session
  - 404: Employee or period not found
  - 422: Validation pipeline rejected the booking (structured verdict)
  - 503: Storage collaborator unavailable (no verdict implied)

WRITE SERIALIZATION:
  The engine's read-validate-write sequence is not atomic. A single
  mutation lock here makes this process's writers take turns, which is the
  serialization point the single-administrator deployment relies on.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - vacation/validator.go: The pipeline these handlers front
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/warp/vacation-scheduler/i18n"
	"github.com/warp/vacation-scheduler/reports"
	"github.com/warp/vacation-scheduler/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     vacation.Store
	Validator *vacation.Validator
	Reports   *reports.Service
	Catalog   i18n.Catalog

	gate *sessionGate

	// writeMu serializes validate-then-persist sequences.
	writeMu sync.Mutex
}

// NewHandler creates a new handler over the given store. passwordHash is the
// bcrypt hash guarding the API; empty disables the gate.
func NewHandler(store vacation.Store, passwordHash string) *Handler {
	return &Handler{
		Store:     store,
		Validator: &vacation.Validator{Store: store},
		Reports:   &reports.Service{Store: store},
		Catalog:   i18n.Default(),
		gate:      newSessionGate(passwordHash),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := vacation.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee adds an employee to the roster.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}

	id, err := h.Store.SaveEmployee(r.Context(), emp)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to create employee", err)
		return
	}
	emp.ID = id
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee updates an employee in place. Entitlement changes do not
// retroactively invalidate past bookings.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	emp.ID = vacation.EmployeeID(chi.URLParam(r, "id"))

	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		if vacation.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and their bookings.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := vacation.EmployeeID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetEmployeeSummary returns one employee's entitlement usage for a year.
// GET /api/employees/{id}/summary?year=2024
func (h *Handler) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := vacation.EmployeeID(chi.URLParam(r, "id"))
	year := yearParam(r, vacation.Today().Year())

	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	periods, err := h.Store.GetPeriodsForEmployeeAndYear(ctx, id, year)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to get periods", err)
		return
	}

	used := vacation.UsedBusinessDays(periods, "")
	writeJSON(w, http.StatusOK, SummaryDTO{
		EmployeeID: string(emp.ID),
		Name:       emp.Name,
		Year:       year,
		Used:       used,
		Available:  emp.AnnualEntitlementDays,
		Remaining:  emp.AnnualEntitlementDays - used,
	})
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (vacation.Employee, bool) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return vacation.Employee{}, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return vacation.Employee{}, false
	}
	if req.AnnualEntitlementDays <= 0 {
		writeError(w, http.StatusBadRequest, "annual_entitlement_days must be positive", nil)
		return vacation.Employee{}, false
	}
	hireDate, err := vacation.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
		return vacation.Employee{}, false
	}
	return vacation.Employee{
		Name:                  req.Name,
		HireDate:              hireDate,
		AnnualEntitlementDays: req.AnnualEntitlementDays,
	}, true
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns all bookings, newest first.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Store.ListPeriods(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to list vacations", err)
		return
	}

	dtos := make([]VacationDTO, len(periods))
	for i, p := range periods {
		dtos[i] = toVacationDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateVacation runs the validation pipeline and persists on admission.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := h.decodeVacation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	verdict, err := h.Validator.ValidateNewPeriod(ctx, vacation.EmployeeID(req.EmployeeID), start, end, req.Year)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}
	observeVerdict(verdict.Admitted, string(verdict.Reason))

	if !verdict.Admitted {
		writeJSON(w, http.StatusUnprocessableEntity, h.toVerdictDTO(verdict, langFrom(r)))
		return
	}

	period := vacation.NewVacationPeriod(vacation.EmployeeID(req.EmployeeID), start, end, req.Year)
	id, err := h.Store.SavePeriod(ctx, period)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to save vacation", err)
		return
	}
	period.ID = id
	writeJSON(w, http.StatusCreated, toVacationDTO(period))
}

// UpdateVacation revalidates a booking's new bounds against everything but
// its own prior state, then persists on admission.
func (h *Handler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := h.decodeVacation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	periodID := vacation.PeriodID(chi.URLParam(r, "id"))

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	verdict, err := h.Validator.ValidateEditedPeriod(ctx, periodID, vacation.EmployeeID(req.EmployeeID), start, end, req.Year)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}
	observeVerdict(verdict.Admitted, string(verdict.Reason))

	if !verdict.Admitted {
		writeJSON(w, http.StatusUnprocessableEntity, h.toVerdictDTO(verdict, langFrom(r)))
		return
	}

	period := vacation.NewVacationPeriod(vacation.EmployeeID(req.EmployeeID), start, end, req.Year)
	period.ID = periodID
	if err := h.Store.UpdatePeriod(ctx, period); err != nil {
		if vacation.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Vacation not found", nil)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Failed to update vacation", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(period))
}

// DeleteVacation removes a booking unconditionally.
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	id := vacation.PeriodID(chi.URLParam(r, "id"))
	if err := h.Store.DeletePeriod(r.Context(), id); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to delete vacation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateVacation runs the pipeline without persisting anything, so the UI
// can show conflicts before the user commits.
// POST /api/vacations/validate
func (h *Handler) ValidateVacation(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := h.decodeVacation(w, r)
	if !ok {
		return
	}

	verdict, err := h.Validator.ValidateNewPeriod(r.Context(), vacation.EmployeeID(req.EmployeeID), start, end, req.Year)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toVerdictDTO(verdict, langFrom(r)))
}

func (h *Handler) decodeVacation(w http.ResponseWriter, r *http.Request) (VacationRequest, vacation.Date, vacation.Date, bool) {
	var req VacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, vacation.Date{}, vacation.Date{}, false
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return req, vacation.Date{}, vacation.Date{}, false
	}
	start, err := vacation.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return req, vacation.Date{}, vacation.Date{}, false
	}
	end, err := vacation.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return req, vacation.Date{}, vacation.Date{}, false
	}
	return req, start, end, true
}

// writeValidationError maps fatal pipeline errors; rejections never reach
// here (they are verdicts, not errors).
func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	switch {
	case vacation.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Record not found", err)
	case vacation.IsStorage(err):
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable, try again later", err)
	default:
		writeError(w, http.StatusInternalServerError, "Validation failed", err)
	}
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the organization-wide cap.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.GetConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to get config", err)
		return
	}
	writeJSON(w, http.StatusOK, ConfigDTO{MaxSimultaneousVacationers: cfg.MaxSimultaneousVacationers})
}

// UpdateConfig changes the cap. Applies to subsequent validations only;
// existing bookings are never re-validated.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.MaxSimultaneousVacationers < 1 {
		writeError(w, http.StatusBadRequest, "max_simultaneous_vacationers must be at least 1", nil)
		return
	}

	if err := h.Store.UpdateConfig(r.Context(), vacation.Config{
		MaxSimultaneousVacationers: req.MaxSimultaneousVacationers,
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to update config", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// ReportSummary returns per-employee entitlement usage for a year.
// GET /api/reports/summary?year=2024
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	year := yearParam(r, vacation.Today().Year())

	rows, err := h.Reports.Summaries(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to build summary", err)
		return
	}

	dtos := make([]SummaryDTO, len(rows))
	for i, s := range rows {
		dtos[i] = toSummaryDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ReportUpcoming returns bookings starting on or after today (or ?from=).
func (h *Handler) ReportUpcoming(w http.ResponseWriter, r *http.Request) {
	from := vacation.Today()
	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := vacation.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from format (use YYYY-MM-DD)", err)
			return
		}
		from = parsed
	}

	rows, err := h.Reports.Upcoming(r.Context(), from)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to list upcoming vacations", err)
		return
	}

	dtos := make([]UpcomingDTO, len(rows))
	for i, u := range rows {
		dtos[i] = UpcomingDTO{
			EmployeeName: u.EmployeeName,
			StartDate:    u.Period.StartDate.String(),
			EndDate:      u.Period.EndDate.String(),
			BusinessDays: u.Period.BusinessDays,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ReportCongestion returns the per-day load series and per-period averages.
func (h *Handler) ReportCongestion(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.Congestion(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to build congestion report", err)
		return
	}

	dto := CongestionDTO{
		Daily:   make([]DayLoadDTO, len(report.Daily)),
		Periods: make([]PeriodLoadDTO, len(report.Periods)),
	}
	for i, d := range report.Daily {
		dto.Daily[i] = DayLoadDTO{Date: d.Date.String(), Count: d.Count}
	}
	for i, p := range report.Periods {
		dto.Periods[i] = PeriodLoadDTO{
			EmployeeName:   p.EmployeeName,
			StartDate:      p.Period.StartDate.String(),
			EndDate:        p.Period.EndDate.String(),
			AverageOverlap: p.AverageOverlap.StringFixed(2),
			Band:           string(p.Band),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func yearParam(r *http.Request, fallback int) int {
	if s := r.URL.Query().Get("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			return y
		}
	}
	return fallback
}

func langFrom(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return "pt"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
