// Package record provides declarative, immutable record types with typed,
// labeled and validated fields.
//
// Quick Start:
//
//	var Person = record.MustBuild(record.NewType("Person").
//	    Field("name", record.String, record.NewField("The name")).
//	    Field("age", record.Int, record.NewField("The person's age",
//	        record.WithPrecondition(record.Between(0, 150)))))
//
//	james, err := Person.New(record.Args{"name": "James", "age": 34})
//	fmt.Println(james)
//
// Types extend parents with Extends; inherited fields come first and a
// redeclared field keeps its position. Records reject missing, unexpected,
// mistyped and precondition-violating arguments, and never change after
// construction.
//
// Struct-declared types use `record` tags: label:text, name:field, min:N,
// max:N, oneof:a,b,c, secret. See Of.
//
// See example_test.go for detailed usage.
package record
