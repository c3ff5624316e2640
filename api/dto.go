/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Date parsing and required-field checks happen in handlers; admission
  decisions live in the vacation package. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - vacation/verdict.go: The domain shape VerdictDTO flattens
*/
package api

import (
	"github.com/warp/vacation-scheduler/reports"
	"github.com/warp/vacation-scheduler/vacation"
)

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	HireDate              string `json:"hire_date"`
	AnnualEntitlementDays int    `json:"annual_entitlement_days"`
}

// EmployeeRequest is the request to create or update an employee.
type EmployeeRequest struct {
	Name                  string `json:"name"`
	HireDate              string `json:"hire_date"`
	AnnualEntitlementDays int    `json:"annual_entitlement_days"`
}

// =============================================================================
// VACATION TYPES
// =============================================================================

// VacationDTO represents a booked period in API responses.
type VacationDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	BusinessDays int    `json:"business_days"`
	Year         int    `json:"year"`
}

// VacationRequest is the request to book, edit, or dry-run-validate a period.
// Year is optional and defaults to the start date's calendar year.
type VacationRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Year       int    `json:"year,omitempty"`
}

// VerdictDTO flattens a vacation.Verdict for JSON clients. Detail fields are
// present only for the matching reason.
type VerdictDTO struct {
	Admitted     bool   `json:"admitted"`
	Reason       string `json:"reason,omitempty"`
	Message      string `json:"message,omitempty"`
	BusinessDays int    `json:"business_days,omitempty"`

	ConflictStart string `json:"conflict_start,omitempty"`
	ConflictEnd   string `json:"conflict_end,omitempty"`
	UsedDays      int    `json:"used_days,omitempty"`
	AvailableDays int    `json:"available_days,omitempty"`
	Year          int    `json:"year,omitempty"`
	ConflictDate  string `json:"conflict_date,omitempty"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

type ConfigDTO struct {
	MaxSimultaneousVacationers int `json:"max_simultaneous_vacationers"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

type SummaryDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Used       int    `json:"used"`
	Available  int    `json:"available"`
	Remaining  int    `json:"remaining"`
}

type UpcomingDTO struct {
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	BusinessDays int    `json:"business_days"`
}

type DayLoadDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PeriodLoadDTO struct {
	EmployeeName   string `json:"employee_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	AverageOverlap string `json:"average_overlap"`
	Band           string `json:"band"`
}

type CongestionDTO struct {
	Daily   []DayLoadDTO    `json:"daily"`
	Periods []PeriodLoadDTO `json:"periods"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// =============================================================================
// MISC
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toEmployeeDTO(e vacation.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                    string(e.ID),
		Name:                  e.Name,
		HireDate:              e.HireDate.String(),
		AnnualEntitlementDays: e.AnnualEntitlementDays,
	}
}

func toVacationDTO(p vacation.VacationPeriod) VacationDTO {
	return VacationDTO{
		ID:           string(p.ID),
		EmployeeID:   string(p.EmployeeID),
		StartDate:    p.StartDate.String(),
		EndDate:      p.EndDate.String(),
		BusinessDays: p.BusinessDays,
		Year:         p.Year,
	}
}

func toSummaryDTO(s reports.EmployeeSummary) SummaryDTO {
	return SummaryDTO{
		EmployeeID: string(s.EmployeeID),
		Name:       s.Name,
		Year:       s.Year,
		Used:       s.Used,
		Available:  s.Available,
		Remaining:  s.Remaining,
	}
}

func (h *Handler) toVerdictDTO(v vacation.Verdict, lang string) VerdictDTO {
	dto := VerdictDTO{
		Admitted:     v.Admitted,
		BusinessDays: v.BusinessDays,
		Message:      h.Catalog.VerdictMessage(lang, v),
	}
	if v.Admitted {
		return dto
	}
	dto.Reason = string(v.Reason)
	switch {
	case v.Duplicate != nil:
		dto.ConflictStart = v.Duplicate.ConflictStart.String()
		dto.ConflictEnd = v.Duplicate.ConflictEnd.String()
	case v.Entitlement != nil:
		dto.UsedDays = v.Entitlement.Used
		dto.AvailableDays = v.Entitlement.Available
		dto.Year = v.Entitlement.Year
	case v.Headcount != nil:
		dto.ConflictDate = v.Headcount.ConflictDate.String()
	}
	return dto
}
