package store

import "time"

// normalizeRecord rewrites driver-specific scan values into the forms the
// rest of the system expects: []byte columns become strings and timestamps
// become RFC 3339 text. GORM's map scanning surfaces MySQL text columns as
// []byte depending on driver settings, which would otherwise leak into JSON
// responses as base64.
func normalizeRecord(rec Record) Record {
	for k, v := range rec {
		switch val := v.(type) {
		case []byte:
			rec[k] = string(val)
		case time.Time:
			rec[k] = val.UTC().Format(time.RFC3339)
		}
	}
	return rec
}
