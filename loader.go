package record

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Loader constructs a record from the merged output of several sources.
// Sources are processed in order (later override earlier). Loaded values go
// through the same constructor as New.
type Loader struct {
	typ     *Type
	sources []Source
	strict  bool // Fail on undeclared keys (default: true)
	logger  *zap.SugaredLogger
}

// NewLoader creates a Loader for t with no sources and strict mode enabled.
func NewLoader(t *Type) *Loader {
	return &Loader{
		typ:     t,
		sources: make([]Source, 0),
		strict:  true,
		logger:  zap.NewNop().Sugar(),
	}
}

// WithSource adds a source. Sources are processed in order (later override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// Strict controls whether keys the type does not declare cause an
// ErrUnexpectedArgument. When false they are dropped. Default: true.
func (l *Loader) Strict(strict bool) *Loader {
	l.strict = strict
	return l
}

// WithLogger sets the logger used for load diagnostics. Default: no-op.
func (l *Loader) WithLogger(logger *zap.SugaredLogger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

type mergedEntry struct {
	value      any
	key        string // key as the source reported it
	sourceName string
}

// Load reads every source, merges keys case-insensitively, coerces values
// toward the declared field types and constructs the record.
func (l *Loader) Load(ctx context.Context) (*Record, error) {
	if l.typ == nil {
		return nil, errors.Wrap(ErrConfiguration, "loader has no record type")
	}

	merged := make(map[string]mergedEntry)
	for _, source := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := source.Load(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "load source %s", source.Name())
		}
		l.logger.Debugw("Loaded record source",
			"type", l.typ.name,
			"source", source.Name(),
			"keys", len(data))

		for key, value := range data {
			merged[strings.ToLower(key)] = mergedEntry{
				value:      value,
				key:        key,
				sourceName: source.Name(),
			}
		}
	}

	byLower := make(map[string]Spec, len(l.typ.fields))
	for _, s := range l.typ.fields {
		byLower[strings.ToLower(s.Name)] = s
	}

	args := make(Args, len(merged))
	var prov []FieldProvenance
	for lowered, entry := range merged {
		s, ok := byLower[lowered]
		if !ok {
			if l.strict {
				args[entry.key] = entry.value
			} else {
				l.logger.Debugw("Ignoring undeclared key",
					"type", l.typ.name,
					"key", entry.key,
					"source", entry.sourceName)
			}
			continue
		}
		args[s.Name] = coerce(entry.value, s.Type)
		prov = append(prov, FieldProvenance{
			Field:      s.Name,
			Key:        entry.key,
			SourceName: entry.sourceName,
			Secret:     s.Descriptor.IsSecret(),
		})
	}

	rec, err := l.typ.construct(args, orderProvenance(l.typ, prov))
	if err != nil {
		if errors.Is(err, ErrUnexpectedArgument) {
			err = errors.WithHint(err, "call Strict(false) to ignore keys the record type does not declare")
		}
		return nil, errors.Wrapf(err, "load %s", l.typ.name)
	}

	l.logger.Infow("Loaded record",
		"type", l.typ.name,
		"fields", len(l.typ.fields),
		"sources", len(l.sources))
	return rec, nil
}

// orderProvenance sorts provenance entries into field order.
func orderProvenance(t *Type, prov []FieldProvenance) []FieldProvenance {
	out := make([]FieldProvenance, 0, len(prov))
	for _, s := range t.fields {
		for _, p := range prov {
			if p.Field == s.Name {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
