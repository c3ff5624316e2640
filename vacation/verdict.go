package vacation

import "fmt"

// =============================================================================
// VERDICT - Structured admit/reject outcome of the validation pipeline
// =============================================================================

// Reason identifies why a request was rejected. Codes are stable strings so
// the presentation layer can localize them.
type Reason string

const (
	ReasonInvalidRange        Reason = "invalid_range"
	ReasonEmptyRange          Reason = "empty_range"
	ReasonDuplicatePeriod     Reason = "duplicate_period"
	ReasonEntitlementExceeded Reason = "entitlement_exceeded"
	ReasonHeadcountExceeded   Reason = "headcount_exceeded"
)

// Verdict is the outcome of running the pipeline against a proposed period.
// Exactly one of the detail pointers is set when rejected, matching Reason.
type Verdict struct {
	Admitted bool
	Reason   Reason

	Duplicate   *DuplicateDetails
	Entitlement *EntitlementDetails
	Headcount   *HeadcountDetails

	// BusinessDays is the derived length of the proposed period. Populated
	// on every verdict that got past the empty-range check, so an admitting
	// caller can persist it without recomputing.
	BusinessDays int
}

// DuplicateDetails carries the bounds of the conflicting booking.
type DuplicateDetails struct {
	ConflictStart Date
	ConflictEnd   Date
}

// EntitlementDetails carries the figures behind an allowance rejection.
type EntitlementDetails struct {
	Used      int
	Available int
	Year      int
}

// HeadcountDetails carries the first over-cap date.
type HeadcountDetails struct {
	ConflictDate Date
}

func admitted(businessDays int) Verdict {
	return Verdict{Admitted: true, BusinessDays: businessDays}
}

func rejected(reason Reason) Verdict {
	return Verdict{Admitted: false, Reason: reason}
}

// String renders the verdict for logs. Presentation layers should localize
// from Reason and the detail structs instead.
func (v Verdict) String() string {
	if v.Admitted {
		return fmt.Sprintf("admitted (%d business days)", v.BusinessDays)
	}
	switch v.Reason {
	case ReasonDuplicatePeriod:
		return fmt.Sprintf("rejected: %s [%s, %s]", v.Reason, v.Duplicate.ConflictStart, v.Duplicate.ConflictEnd)
	case ReasonEntitlementExceeded:
		return fmt.Sprintf("rejected: %s (used %d, available %d, year %d)",
			v.Reason, v.Entitlement.Used, v.Entitlement.Available, v.Entitlement.Year)
	case ReasonHeadcountExceeded:
		return fmt.Sprintf("rejected: %s on %s", v.Reason, v.Headcount.ConflictDate)
	default:
		return "rejected: " + string(v.Reason)
	}
}
