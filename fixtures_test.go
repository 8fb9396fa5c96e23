package record

import "testing"

// newPerson declares the Person type used across tests.
func newPerson(t *testing.T) *Type {
	t.Helper()
	person, err := NewType("Person").
		Field("name", String, NewField("The name")).
		Field("age", Int, NewField("The person's age",
			WithPrecondition(Check(func(x int) bool { return 0 <= x && x <= 150 })))).
		Field("income", Float, NewField("The person's income",
			WithPrecondition(Min(0)))).
		Build()
	if err != nil {
		t.Fatalf("define Person: %v", err)
	}
	return person
}

// newAnimals declares Named, Animal(Named) and Dog(Animal).
func newAnimals(t *testing.T) (named, animal, dog *Type) {
	t.Helper()
	named = MustBuild(NewType("Named").
		Field("name", String, NewField("The name")))
	animal = MustBuild(NewType("Animal").Extends(named).
		Field("habitat", String, NewField("The habitat",
			WithPrecondition(OneOf("air", "land", "water")))).
		Field("weight", Float, NewField("The animals weight (kg)",
			WithPrecondition(Min(0)))))
	dog = MustBuild(NewType("Dog").Extends(animal).
		Field("bark", String, NewField("Sound of bark")))
	return named, animal, dog
}

func personArgs() Args {
	return Args{"name": "James", "age": 34, "income": 24000.0}
}
