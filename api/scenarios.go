/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Populates the store with realistic data so the validation rules can be
  exercised from the UI without manual setup.

AVAILABLE SCENARIOS:
  quiet-spring:    Three employees, no overlapping bookings, high cap
  crowded-august:  Cap 2 with two bookings already sharing an August week,
                   so the next overlapping request trips the headcount check

NOTE:
  Loading a scenario replaces roster and bookings. Only use in
  development/demo environments.

SEE ALSO:
  - handlers.go: Shares writeJSON/writeError helpers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/vacation-scheduler/vacation"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "quiet-spring",
		Name:        "Quiet Spring",
		Description: "Three employees with spread-out bookings and a high cap",
	},
	{
		ID:          "crowded-august",
		Name:        "Crowded August",
		Description: "Cap 2 with an August week already at capacity",
	},
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario wipes current data and loads the named scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	var err error
	switch req.ScenarioID {
	case "quiet-spring":
		err = h.loadQuietSpring(r.Context())
	case "crowded-august":
		err = h.loadCrowdedAugust(r.Context())
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// LOADERS
// =============================================================================

func (h *Handler) loadQuietSpring(ctx context.Context) error {
	if err := h.clear(ctx); err != nil {
		return err
	}
	if err := h.Store.UpdateConfig(ctx, vacation.Config{MaxSimultaneousVacationers: 5}); err != nil {
		return err
	}

	year := time.Now().Year()
	bookings := []struct {
		name        string
		entitlement int
		start, end  vacation.Date
	}{
		{"Ana Martins", 22, vacation.NewDate(year, time.March, 3), vacation.NewDate(year, time.March, 7)},
		{"Bruno Costa", 25, vacation.NewDate(year, time.April, 14), vacation.NewDate(year, time.April, 18)},
		{"Carla Sousa", 22, vacation.NewDate(year, time.May, 5), vacation.NewDate(year, time.May, 9)},
	}

	for _, b := range bookings {
		id, err := h.Store.SaveEmployee(ctx, vacation.Employee{
			Name:                  b.name,
			HireDate:              vacation.NewDate(year-3, time.January, 15),
			AnnualEntitlementDays: b.entitlement,
		})
		if err != nil {
			return err
		}
		if _, err := h.Store.SavePeriod(ctx, vacation.NewVacationPeriod(id, b.start, b.end, year)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadCrowdedAugust(ctx context.Context) error {
	if err := h.clear(ctx); err != nil {
		return err
	}
	if err := h.Store.UpdateConfig(ctx, vacation.Config{MaxSimultaneousVacationers: 2}); err != nil {
		return err
	}

	year := time.Now().Year()
	aID, err := h.Store.SaveEmployee(ctx, vacation.Employee{
		Name:                  "Diana Ferreira",
		HireDate:              vacation.NewDate(year-5, time.June, 1),
		AnnualEntitlementDays: 22,
	})
	if err != nil {
		return err
	}
	bID, err := h.Store.SaveEmployee(ctx, vacation.Employee{
		Name:                  "Eduardo Pinto",
		HireDate:              vacation.NewDate(year-2, time.September, 9),
		AnnualEntitlementDays: 22,
	})
	if err != nil {
		return err
	}
	if _, err := h.Store.SaveEmployee(ctx, vacation.Employee{
		Name:                  "Filipa Ramos",
		HireDate:              vacation.NewDate(year-1, time.February, 1),
		AnnualEntitlementDays: 22,
	}); err != nil {
		return err
	}

	// Both bookings cover the second week of August; with cap 2, any third
	// request touching that week is rejected.
	if _, err := h.Store.SavePeriod(ctx, vacation.NewVacationPeriod(aID,
		vacation.NewDate(year, time.August, 4), vacation.NewDate(year, time.August, 15), year)); err != nil {
		return err
	}
	if _, err := h.Store.SavePeriod(ctx, vacation.NewVacationPeriod(bID,
		vacation.NewDate(year, time.August, 11), vacation.NewDate(year, time.August, 22), year)); err != nil {
		return err
	}
	return nil
}

func (h *Handler) clear(ctx context.Context) error {
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if err := h.Store.DeleteEmployee(ctx, e.ID); err != nil {
			return err
		}
	}
	periods, err := h.Store.ListPeriods(ctx)
	if err != nil {
		return err
	}
	for _, p := range periods {
		if err := h.Store.DeletePeriod(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}
