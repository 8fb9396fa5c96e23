package sourcefile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/record"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns empty map).
	// With Section set, a missing section is an error too.
	Required bool

	// Section selects a nested table holding the record's fields, as a
	// dotted path (e.g. "pets.dog"). One file can then describe several
	// records. Empty means the top-level table.
	Section string
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based argument source.
func New(path string, opts Options) record.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load reads and parses the file. Nested tables are flattened to dotted
// keys; records are flat, so a strict loader rejects them. With a Section,
// only keys below it are returned, relative to it.
func (f *fileSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, errors.Wrapf(err, "required record file not found: %s", f.path)
			}
			return make(map[string]any), nil
		}
		return nil, errors.Wrapf(err, "read record file %s", f.path)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	raw, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", f.path)
	}

	flattened := make(map[string]any)
	flattenMap("", raw, flattened)
	if f.opts.Section == "" {
		return flattened, nil
	}

	section := make(map[string]any)
	prefix := strings.ToLower(f.opts.Section) + "."
	for key, value := range flattened {
		if rest, ok := cutPrefixFold(key, prefix); ok {
			section[rest] = value
		}
	}
	if len(section) == 0 && f.opts.Required {
		return nil, errors.Newf("section %q not found in %s", f.opts.Section, f.path)
	}
	return section, nil
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

// Parse decodes a YAML, JSON or TOML document into a map.
func Parse(data []byte, format string) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parse YAML")
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parse JSON")
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parse TOML")
		}
	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported file format: %q", format),
			"supported formats: yaml, json, toml")
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// flattenMap recursively flattens nested maps to dot-separated keys.
func flattenMap(prefix string, value any, result map[string]any) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flattenMap(join(prefix, key), val, result)
		}
	case map[any]any:
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				continue
			}
			flattenMap(join(prefix, keyStr), val, result)
		}
	default:
		if prefix != "" {
			result[prefix] = value
		}
	}
}

// cutPrefixFold is strings.CutPrefix with case-insensitive matching.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
