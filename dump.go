package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	withSources bool   // Include source attribution for each field
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes source attribution for each field in the output.
// Only records produced by a Loader carry sources.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the record as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  "). An empty indent produces compact JSON.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// String renders the record as a labeled block, one field per paragraph:
//
//	Person(
//	  # The name
//	  name='James'
//
//	  # The person's age
//	  age=34
//	)
//
// Fields appear in the type's field order. Secret fields are redacted.
func (r *Record) String() string {
	var b strings.Builder
	r.writeText(&b, dumpConfig{})
	return b.String()
}

func (r *Record) writeText(b *strings.Builder, cfg dumpConfig) {
	b.WriteString(r.typ.name)
	b.WriteString("(\n")
	for i, s := range r.typ.fields {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  # ")
		b.WriteString(s.Descriptor.Label())
		if cfg.withSources {
			if src := r.sourceOf(s.Name); src != "" {
				fmt.Fprintf(b, " (source: %s)", src)
			}
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "  %s=%s\n", s.Name, displayValue(s, r.values[i]))
	}
	b.WriteString(")")
}

// Dump writes a human-readable representation of the record to w.
// Secret fields are redacted as "***redacted***".
// Returns an error if writing to the writer fails.
func Dump(w io.Writer, r *Record, opts ...DumpOption) error {
	if r == nil {
		return errors.New("record is nil")
	}

	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.asJSON {
		return dumpAsJSON(w, r, config)
	}
	return dumpAsText(w, r, config)
}

func dumpAsText(w io.Writer, r *Record, config dumpConfig) error {
	var b strings.Builder
	r.writeText(&b, config)
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write error")
	}
	return nil
}

// jsonRecord is the JSON shape of a dumped record. Fields keep their order.
type jsonRecord struct {
	Type   string      `json:"type"`
	Fields []jsonField `json:"fields"`
}

type jsonField struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Value  any    `json:"value"`
	Source string `json:"source,omitempty"`
}

func dumpAsJSON(w io.Writer, r *Record, config dumpConfig) error {
	out := jsonRecord{
		Type:   r.typ.name,
		Fields: make([]jsonField, len(r.typ.fields)),
	}
	for i, s := range r.typ.fields {
		var value any = r.values[i]
		if s.Descriptor.IsSecret() {
			value = redacted
		}
		out.Fields[i] = jsonField{
			Name:  s.Name,
			Label: s.Descriptor.Label(),
			Value: value,
		}
		if config.withSources {
			out.Fields[i].Source = r.sourceOf(s.Name)
		}
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(out, "", config.indent)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return errors.Wrap(err, "json marshal error")
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write error")
	}
	return nil
}
