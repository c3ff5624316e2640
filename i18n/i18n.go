/*
Package i18n provides the key-to-string lookup table used for display.

PURPOSE:
  Rejection reasons travel through the system as structured codes plus
  contextual data; this package turns them into user-facing text. Catalogs
  are TOML tables keyed by language, loadable from a file so operators can
  edit copy without a rebuild. Portuguese and English ship built in.

FORMAT:
  [pt]
  duplicate_period = "Já existem férias marcadas entre %s e %s."

  [en]
  duplicate_period = "A vacation between %s and %s is already booked."

Lookups fall back to English, then to the key itself, so a missing entry
degrades to something greppable instead of an empty string.
*/
package i18n

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/warp/vacation-scheduler/vacation"
)

// Catalog maps language -> key -> message template.
type Catalog map[string]map[string]string

const defaultLang = "en"

var builtin = mustParse(`
[pt]
invalid_range = "A data final deve ser igual ou posterior à inicial."
empty_range = "O período escolhido não contém dias úteis."
duplicate_period = "Já existem férias marcadas entre %s e %s."
entitlement_exceeded = "Dias de férias excedidos: %d usados de %d disponíveis em %d."
headcount_exceeded = "Excesso de pessoas em férias no dia %s."
admitted = "Férias marcadas."

[en]
invalid_range = "The end date must be on or after the start date."
empty_range = "The chosen range contains no business days."
duplicate_period = "A vacation between %s and %s is already booked."
entitlement_exceeded = "Vacation allowance exceeded: %d used of %d available in %d."
headcount_exceeded = "Too many people on vacation on %s."
admitted = "Vacation booked."
`)

func mustParse(src string) Catalog {
	var c Catalog
	if _, err := toml.Decode(src, &c); err != nil {
		panic("i18n: built-in catalog is malformed: " + err.Error())
	}
	return c
}

// Default returns the built-in pt/en catalog.
func Default() Catalog {
	return builtin
}

// Load reads a catalog from a TOML file, e.g. a customer-edited copy deck.
func Load(path string) (Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Lookup returns the template for key in lang, falling back to English and
// finally to the key itself.
func (c Catalog) Lookup(lang, key string) string {
	if msgs, ok := c[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if lang != defaultLang {
		if msg, ok := c[defaultLang][key]; ok {
			return msg
		}
	}
	return key
}

// VerdictMessage renders a verdict into a localized message, interpolating
// the verdict's structured details.
func (c Catalog) VerdictMessage(lang string, v vacation.Verdict) string {
	if v.Admitted {
		return c.Lookup(lang, "admitted")
	}
	tmpl := c.Lookup(lang, string(v.Reason))
	switch v.Reason {
	case vacation.ReasonDuplicatePeriod:
		if v.Duplicate != nil {
			return fmt.Sprintf(tmpl, v.Duplicate.ConflictStart, v.Duplicate.ConflictEnd)
		}
	case vacation.ReasonEntitlementExceeded:
		if v.Entitlement != nil {
			return fmt.Sprintf(tmpl, v.Entitlement.Used, v.Entitlement.Available, v.Entitlement.Year)
		}
	case vacation.ReasonHeadcountExceeded:
		if v.Headcount != nil {
			return fmt.Sprintf(tmpl, v.Headcount.ConflictDate)
		}
	}
	return tmpl
}
