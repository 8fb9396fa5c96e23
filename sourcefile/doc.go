// Package sourcefile loads record arguments from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .json, .toml).
// Options.Section picks one nested table, so a single file can describe
// several records.
//
// Example:
//
//	source := sourcefile.New("pets.yaml", sourcefile.Options{Section: "pets.dog"})
//	rec, err := record.NewLoader(Dog).WithSource(source).Load(ctx)
package sourcefile
