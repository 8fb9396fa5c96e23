// Package sourceenv loads record arguments from environment variables.
//
// Key normalization: FOO__BAR → foo.bar, FOO_BAR → foo_bar
//
// Example:
//
//	source := sourceenv.New(sourceenv.Options{Prefix: "PERSON_"})
//	rec, err := record.NewLoader(Person).WithSource(source).Load(ctx)
package sourceenv
