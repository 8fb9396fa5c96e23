package record

// Provenance contains source information for a loaded record.
type Provenance struct {
	Fields []FieldProvenance
}

// FieldProvenance describes where a field's value came from.
type FieldProvenance struct {
	Field      string // Field name (e.g., "age")
	Key        string // Key as the source reported it (e.g., "AGE")
	SourceName string // Source identifier (e.g., "env", "file:person.yaml")
	Secret     bool   // Whether the field is secret
}

// Provenance returns source information for a record produced by a Loader.
// Records built directly with New have none.
func (r *Record) Provenance() (*Provenance, bool) {
	if len(r.provenance) == 0 {
		return nil, false
	}
	return &Provenance{Fields: append([]FieldProvenance(nil), r.provenance...)}, true
}

// sourceOf returns the source name recorded for a field, or "".
func (r *Record) sourceOf(field string) string {
	for _, p := range r.provenance {
		if p.Field == field {
			return p.SourceName
		}
	}
	return ""
}
