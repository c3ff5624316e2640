package i18n_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/warp/vacation-scheduler/i18n"
	"github.com/warp/vacation-scheduler/vacation"
)

func TestLookup_FallbackChain(t *testing.T) {
	c := i18n.Default()

	// GIVEN: A key present in the requested language
	if got := c.Lookup("pt", "admitted"); got != "Férias marcadas." {
		t.Errorf("pt lookup = %q", got)
	}

	// GIVEN: An unknown language falls back to English
	if got := c.Lookup("fr", "admitted"); got != "Vacation booked." {
		t.Errorf("fr fallback = %q", got)
	}

	// GIVEN: A key missing everywhere falls back to the key itself
	if got := c.Lookup("pt", "no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q", got)
	}
}

func TestVerdictMessage_Duplicate(t *testing.T) {
	c := i18n.Default()
	v := vacation.Verdict{
		Reason: vacation.ReasonDuplicatePeriod,
		Duplicate: &vacation.DuplicateDetails{
			ConflictStart: vacation.NewDate(2024, time.June, 10),
			ConflictEnd:   vacation.NewDate(2024, time.June, 14),
		},
	}

	got := c.VerdictMessage("en", v)
	want := "A vacation between 2024-06-10 and 2024-06-14 is already booked."
	if got != want {
		t.Errorf("VerdictMessage = %q, want %q", got, want)
	}
}

func TestVerdictMessage_Entitlement(t *testing.T) {
	c := i18n.Default()
	v := vacation.Verdict{
		Reason: vacation.ReasonEntitlementExceeded,
		Entitlement: &vacation.EntitlementDetails{
			Used:      20,
			Available: 22,
			Year:      2024,
		},
	}

	got := c.VerdictMessage("pt", v)
	want := "Dias de férias excedidos: 20 usados de 22 disponíveis em 2024."
	if got != want {
		t.Errorf("VerdictMessage = %q, want %q", got, want)
	}
}

func TestVerdictMessage_Headcount(t *testing.T) {
	c := i18n.Default()
	v := vacation.Verdict{
		Reason: vacation.ReasonHeadcountExceeded,
		Headcount: &vacation.HeadcountDetails{
			ConflictDate: vacation.NewDate(2024, time.July, 3),
		},
	}

	got := c.VerdictMessage("en", v)
	want := "Too many people on vacation on 2024-07-03."
	if got != want {
		t.Errorf("VerdictMessage = %q, want %q", got, want)
	}
}

func TestVerdictMessage_Admitted(t *testing.T) {
	c := i18n.Default()
	v := vacation.Verdict{Admitted: true, BusinessDays: 5}

	if got := c.VerdictMessage("pt", v); got != "Férias marcadas." {
		t.Errorf("VerdictMessage = %q", got)
	}
}

func TestVerdictMessage_MissingDetailsLeavesTemplate(t *testing.T) {
	// A verdict with a reason but no details still renders something
	c := i18n.Default()
	v := vacation.Verdict{Reason: vacation.ReasonInvalidRange}

	if got := c.VerdictMessage("en", v); got != "The end date must be on or after the start date." {
		t.Errorf("VerdictMessage = %q", got)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	// GIVEN: An operator-edited copy deck on disk
	path := filepath.Join(t.TempDir(), "catalog.toml")
	src := "[en]\nadmitted = \"Approved!\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := i18n.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Lookup("en", "admitted"); got != "Approved!" {
		t.Errorf("loaded catalog = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := i18n.Load("/nonexistent/catalog.toml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
