package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
)

// ValidationError reports a row that cannot be imported.
type ValidationError struct {
	// Field is the canonical name of the offending field.
	Field string
	// Reason describes why the row was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// Row normalizes one raw sheet row against a table descriptor.
//
// The returned record maps canonical field names to coerced values (string,
// float64 or int). A nil record with a nil error means the row was entirely
// blank and is to be ignored. Unparsable dates are dropped from the record
// and reported in warnings rather than failing the row. A *ValidationError
// is returned when the business-key field is empty after normalization.
func Row(tbl *schema.Table, raw map[string]string) (map[string]any, []string, error) {
	resolved := make(map[string]string, len(tbl.Fields))
	allBlank := true
	for _, f := range tbl.Fields {
		value, ok := resolve(f, raw)
		if !ok {
			continue
		}
		if strings.TrimSpace(value) != "" {
			allBlank = false
		}
		resolved[f.Name] = value
	}

	// A row where every declared field is blank is noise, not an error.
	if allBlank {
		return nil, nil, nil
	}

	rec := make(map[string]any, len(resolved))
	var warnings []string
	for _, f := range tbl.Fields {
		value, ok := resolved[f.Name]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch f.Kind {
		case schema.KindNumber:
			rec[f.Name] = toFloat(value)
		case schema.KindInt:
			rec[f.Name] = toInt(value)
		case schema.KindDate:
			normalized, ok := NormalizeDate(value)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: unparsable date %q dropped", f.Name, value))
				continue
			}
			rec[f.Name] = normalized
		default:
			rec[f.Name] = value
		}
	}

	key, ok := rec[tbl.BusinessKey].(string)
	if !ok || key == "" {
		return nil, warnings, &ValidationError{Field: tbl.BusinessKey, Reason: "business key is empty"}
	}

	return rec, warnings, nil
}

// resolve scans the row's headers against the field's accepted spellings in
// priority order; the first exact match supplies the value. Columns that match
// no field (including store-managed id/created_at/updated_at pass-throughs)
// are discarded, since the store generates its own identity.
func resolve(f schema.Field, raw map[string]string) (string, bool) {
	for _, alias := range f.Aliases {
		if v, ok := raw[alias]; ok {
			return v, true
		}
	}
	return "", false
}

// toFloat coerces permissively; anything unparsable becomes 0.
func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// toInt coerces through a float parse so "90.0" style cells survive.
func toInt(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}
