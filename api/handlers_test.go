package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-scheduler/api"
	"github.com/warp/vacation-scheduler/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// newTestAPI builds a router over a fresh memory store with the password gate
// disabled.
func newTestAPI(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.New()
	return store, api.NewRouter(api.NewHandler(store, ""))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}

func createEmployee(t *testing.T, h http.Handler, name string, entitlement int) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/employees", map[string]any{
		"name":                    name,
		"hire_date":               "2021-03-01",
		"annual_entitlement_days": entitlement,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dto struct {
		ID string `json:"id"`
	}
	decode(t, rec, &dto)
	return dto.ID
}

func setCap(t *testing.T, h http.Handler, cap int) {
	t.Helper()
	rec := do(t, h, http.MethodPut, "/api/config", map[string]int{
		"max_simultaneous_vacationers": cap,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func TestEmployeeCRUD(t *testing.T) {
	_, h := newTestAPI(t)

	id := createEmployee(t, h, "Ana Silva", 22)

	rec := do(t, h, http.MethodGet, "/api/employees/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	decode(t, rec, &got)
	assert.Equal(t, "Ana Silva", got["name"])
	assert.Equal(t, "2021-03-01", got["hire_date"])

	rec = do(t, h, http.MethodPut, "/api/employees/"+id, map[string]any{
		"name":                    "Ana Santos",
		"hire_date":               "2021-03-01",
		"annual_entitlement_days": 25,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana Santos", list[0]["name"])

	rec = do(t, h, http.MethodDelete, "/api/employees/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/employees/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEmployee_Invalid(t *testing.T) {
	_, h := newTestAPI(t)

	// Missing name
	rec := do(t, h, http.MethodPost, "/api/employees", map[string]any{
		"hire_date":               "2021-03-01",
		"annual_entitlement_days": 22,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad date
	rec = do(t, h, http.MethodPost, "/api/employees", map[string]any{
		"name":                    "Ana",
		"hire_date":               "01/03/2021",
		"annual_entitlement_days": 22,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive entitlement
	rec = do(t, h, http.MethodPost, "/api/employees", map[string]any{
		"name":                    "Ana",
		"hire_date":               "2021-03-01",
		"annual_entitlement_days": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// VACATION ENDPOINTS
// =============================================================================

func TestCreateVacation_Admitted(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)

	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto map[string]any
	decode(t, rec, &dto)
	assert.Equal(t, float64(5), dto["business_days"])
	assert.Equal(t, float64(2024), dto["year"])

	rec = do(t, h, http.MethodGet, "/api/vacations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestCreateVacation_RejectedIsUnprocessable(t *testing.T) {
	// GIVEN: An existing booking for the same employee
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)
	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// WHEN: Booking an overlapping range
	rec = do(t, h, http.MethodPost, "/api/vacations?lang=en", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-12",
		"end_date":    "2024-06-18",
	})

	// THEN: Structured verdict, nothing persisted
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var verdict map[string]any
	decode(t, rec, &verdict)
	assert.Equal(t, false, verdict["admitted"])
	assert.Equal(t, "duplicate_period", verdict["reason"])
	assert.Equal(t, "2024-06-10", verdict["conflict_start"])
	assert.Equal(t, "2024-06-14", verdict["conflict_end"])
	assert.Equal(t, "A vacation between 2024-06-10 and 2024-06-14 is already booked.", verdict["message"])

	rec = do(t, h, http.MethodGet, "/api/vacations", nil)
	var list []map[string]any
	decode(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestCreateVacation_HeadcountRejection(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 2)
	x := createEmployee(t, h, "X", 22)
	y := createEmployee(t, h, "Y", 22)

	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": x,
		"start_date":  "2024-08-05",
		"end_date":    "2024-08-09",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": y,
		"start_date":  "2024-08-07",
		"end_date":    "2024-08-07",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var verdict map[string]any
	decode(t, rec, &verdict)
	assert.Equal(t, "headcount_exceeded", verdict["reason"])
	assert.Equal(t, "2024-08-07", verdict["conflict_date"])
}

func TestCreateVacation_UnknownEmployee(t *testing.T) {
	_, h := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": "emp-ghost",
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateVacation_DryRunPersistsNothing(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)

	rec := do(t, h, http.MethodPost, "/api/vacations/validate", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var verdict map[string]any
	decode(t, rec, &verdict)
	assert.Equal(t, true, verdict["admitted"])
	assert.Equal(t, float64(5), verdict["business_days"])

	rec = do(t, h, http.MethodGet, "/api/vacations", nil)
	var list []map[string]any
	decode(t, rec, &list)
	assert.Empty(t, list)
}

func TestUpdateVacation_Revalidates(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)

	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	decode(t, rec, &created)
	pid := created["id"].(string)

	// Unchanged dates never conflict with the booking being edited
	rec = do(t, h, http.MethodPut, "/api/vacations/"+pid, map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-21",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]any
	decode(t, rec, &updated)
	assert.Equal(t, float64(10), updated["business_days"])
}

func TestUpdateVacation_UnknownPeriod(t *testing.T) {
	_, h := newTestAPI(t)
	id := createEmployee(t, h, "Ana", 22)

	rec := do(t, h, http.MethodPut, "/api/vacations/999", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVacation_NeverValidated(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)

	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	decode(t, rec, &created)

	rec = do(t, h, http.MethodDelete, "/api/vacations/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// =============================================================================
// CONFIG ENDPOINTS
// =============================================================================

func TestConfig(t *testing.T) {
	_, h := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg map[string]int
	decode(t, rec, &cfg)
	assert.Equal(t, 1, cfg["max_simultaneous_vacationers"])

	rec = do(t, h, http.MethodPut, "/api/config", map[string]int{"max_simultaneous_vacationers": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	setCap(t, h, 3)
	rec = do(t, h, http.MethodGet, "/api/config", nil)
	decode(t, rec, &cfg)
	assert.Equal(t, 3, cfg["max_simultaneous_vacationers"])
}

// =============================================================================
// REPORT ENDPOINTS
// =============================================================================

func TestReportSummary(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)
	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/reports/summary?year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(5), rows[0]["used"])
	assert.Equal(t, float64(17), rows[0]["remaining"])
}

func TestReportUpcoming(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)
	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/reports/upcoming?from=2024-01-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0]["employee_name"])

	rec = do(t, h, http.MethodGet, "/api/reports/upcoming?from=2024-07-01", nil)
	decode(t, rec, &rows)
	assert.Empty(t, rows)
}

func TestReportCongestion(t *testing.T) {
	_, h := newTestAPI(t)
	setCap(t, h, 5)
	id := createEmployee(t, h, "Ana", 22)
	rec := do(t, h, http.MethodPost, "/api/vacations", map[string]any{
		"employee_id": id,
		"start_date":  "2024-06-10",
		"end_date":    "2024-06-14",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/reports/congestion", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Daily   []map[string]any `json:"daily"`
		Periods []struct {
			AverageOverlap string `json:"average_overlap"`
			Band           string `json:"band"`
		} `json:"periods"`
	}
	decode(t, rec, &report)
	assert.Len(t, report.Daily, 5)
	require.Len(t, report.Periods, 1)
	assert.Equal(t, "1.00", report.Periods[0].AverageOverlap)
	assert.Equal(t, "low", report.Periods[0].Band)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios(t *testing.T) {
	_, h := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	assert.Len(t, list, 2)

	rec = do(t, h, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "crowded-august",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/employees", nil)
	var employees []map[string]any
	decode(t, rec, &employees)
	assert.Len(t, employees, 3)

	rec = do(t, h, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "no-such-scenario",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
