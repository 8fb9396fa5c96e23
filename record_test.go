package record

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Succeeds(t *testing.T) {
	person := newPerson(t)

	james, err := person.New(personArgs())
	require.NoError(t, err)

	assert.Same(t, person, james.Type())
	assert.Equal(t, "James", james.MustGet("name"))
	assert.Equal(t, 34, james.MustGet("age"))
	assert.Equal(t, 24000.0, james.MustGet("income"))
}

func TestNew_Completeness(t *testing.T) {
	person := newPerson(t)

	// Every proper subset of the fields must fail.
	names := person.FieldNames()
	for mask := 0; mask < (1<<len(names))-1; mask++ {
		args := Args{}
		var firstMissing string
		for i, name := range names {
			if mask&(1<<i) != 0 {
				args[name] = personArgs()[name]
			} else if firstMissing == "" {
				firstMissing = name
			}
		}

		rec, err := person.New(args)
		assert.Nil(t, rec)
		require.ErrorIs(t, err, ErrMissingArgument, "args %v", args)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, firstMissing, fe.Field)
		assert.Equal(t, ErrCodeMissing, fe.Code)
		assert.Equal(t, "Person", fe.Type)
	}
}

func TestNew_Exactness(t *testing.T) {
	person := newPerson(t)

	tests := []struct {
		name  string
		extra Args
		field string
	}{
		{name: "one extra keyword", extra: Args{"wealth": 24000.0}, field: "wealth"},
		{name: "extras reported in sorted order", extra: Args{"zeta": 1, "alpha": 2}, field: "alpha"},
		{name: "case matters", extra: Args{"Name": "James"}, field: "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := personArgs()
			for k, v := range tt.extra {
				args[k] = v
			}

			_, err := person.New(args)
			require.ErrorIs(t, err, ErrUnexpectedArgument)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestNew_MissingCheckedBeforeExtra(t *testing.T) {
	person := newPerson(t)

	_, err := person.New(Args{"name": "James", "age": 34, "wealth": 24000.0})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestNew_TypeEnforcement(t *testing.T) {
	person := newPerson(t)

	tests := []struct {
		name  string
		field string
		value any
	}{
		{name: "string for int", field: "age", value: "150"},
		{name: "float for int", field: "age", value: 34.0},
		{name: "int64 for int", field: "age", value: int64(34)},
		{name: "int for float", field: "income", value: 24000},
		{name: "nil for string", field: "name", value: nil},
		{name: "named string type", field: "name", value: label("James")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := personArgs()
			args[tt.field] = tt.value

			_, err := person.New(args)
			require.ErrorIs(t, err, ErrTypeMismatch)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Contains(t, fe.Message, "expected")
		})
	}
}

type label string

func TestNew_TypeCheckedBeforePrecondition(t *testing.T) {
	person := newPerson(t)

	// age violates its precondition, income has the wrong type.
	_, err := person.New(Args{"name": "X", "age": 200, "income": 0})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNew_PreconditionEnforcement(t *testing.T) {
	person := newPerson(t)

	tests := []struct {
		name    string
		field   string
		value   any
		wantErr bool
	}{
		{name: "age at lower bound", field: "age", value: 0},
		{name: "age at upper bound", field: "age", value: 150},
		{name: "age above 150", field: "age", value: 200, wantErr: true},
		{name: "negative age", field: "age", value: -1, wantErr: true},
		{name: "zero income", field: "income", value: 0.0},
		{name: "negative income", field: "income", value: -0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := personArgs()
			args[tt.field] = tt.value

			rec, err := person.New(args)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.value, rec.MustGet(tt.field))
				return
			}

			require.ErrorIs(t, err, ErrPreconditionViolation)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Nil(t, fe.Cause)
		})
	}
}

func TestNew_PreconditionRejectionScenario(t *testing.T) {
	person := newPerson(t)

	rec, err := person.New(Args{"name": "X", "age": 200, "income": 0.0})
	assert.Nil(t, rec)
	require.ErrorIs(t, err, ErrPreconditionViolation)
	assert.EqualError(t, err, "Person.age: precondition (value 200 does not satisfy the precondition)")
}

func TestNew_PanickingPreconditionIsViolation(t *testing.T) {
	boom := errors.New("boom")
	typ := MustBuild(NewType("Fragile").
		Field("value", Int, NewField("A value",
			WithPrecondition(func(any) bool { panic(boom) }))))

	_, err := typ.New(Args{"value": 1})
	require.ErrorIs(t, err, ErrPreconditionViolation)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Error(t, fe.Cause)
	assert.Contains(t, fe.Cause.Error(), "boom")
	assert.Contains(t, fe.Message, "panicked")
}

func TestNew_AllOrNothing(t *testing.T) {
	calls := 0
	counting := func(v any) bool {
		calls++
		return true
	}
	typ := MustBuild(NewType("Pair").
		Field("first", Int, NewField("First", WithPrecondition(counting))).
		Field("second", Int, NewField("Second", WithPrecondition(Min(10)))))

	rec, err := typ.New(Args{"first": 1, "second": 2})
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrPreconditionViolation)
	assert.Equal(t, 1, calls)

	// A type failure stops construction before any precondition runs.
	calls = 0
	_, err = typ.New(Args{"first": 1, "second": "2"})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, 0, calls)
}

func TestNew_ArgsAreCopied(t *testing.T) {
	person := newPerson(t)
	args := personArgs()

	james, err := person.New(args)
	require.NoError(t, err)

	args["name"] = "Someone else"
	assert.Equal(t, "James", james.MustGet("name"))
}

func TestNew_EmptyType(t *testing.T) {
	empty := MustBuild(NewType("Empty"))

	rec, err := empty.New(nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Values())

	_, err = empty.New(Args{"x": 1})
	assert.ErrorIs(t, err, ErrUnexpectedArgument)
}

func TestMustNew_Panics(t *testing.T) {
	person := newPerson(t)
	assert.Panics(t, func() { person.MustNew(Args{}) })
	assert.NotPanics(t, func() { person.MustNew(personArgs()) })
}

func TestRecord_Immutability(t *testing.T) {
	person := newPerson(t)
	james := person.MustNew(personArgs())

	for _, name := range person.FieldNames() {
		before := james.MustGet(name)

		err := james.Set(name, 32)
		require.ErrorIs(t, err, ErrImmutable, "field %s", name)
		assert.False(t, errors.Is(err, ErrTypeMismatch))

		assert.Equal(t, before, james.MustGet(name))
	}

	err := james.Set("nickname", "Jim")
	assert.ErrorIs(t, err, ErrImmutable)
	_, ok := james.Get("nickname")
	assert.False(t, ok)
}

func TestRecord_ValuesIsACopy(t *testing.T) {
	person := newPerson(t)
	james := person.MustNew(personArgs())

	values := james.Values()
	values["age"] = 99
	assert.Equal(t, 34, james.MustGet("age"))

	clone, err := person.New(james.Values())
	require.NoError(t, err)
	assert.Equal(t, james.String(), clone.String())
}

func TestRecord_With(t *testing.T) {
	person := newPerson(t)
	james := person.MustNew(personArgs())

	older, err := james.With(Args{"age": 35})
	require.NoError(t, err)
	assert.Equal(t, 35, older.MustGet("age"))
	assert.Equal(t, 34, james.MustGet("age"))

	_, err = james.With(Args{"age": 151})
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = james.With(Args{"wealth": 1.0})
	assert.ErrorIs(t, err, ErrUnexpectedArgument)
}

func TestRecord_MustGetUnknownPanics(t *testing.T) {
	james := newPerson(t).MustNew(personArgs())
	assert.Panics(t, func() { james.MustGet("nickname") })
}

func TestRecord_ConcurrentReads(t *testing.T) {
	person := newPerson(t)
	james := person.MustNew(personArgs())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = james.MustGet("name")
				_ = james.String()
				_ = james.Set("age", j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 34, james.MustGet("age"))
}

func TestInheritance_DogScenario(t *testing.T) {
	_, _, dog := newAnimals(t)

	mike, err := dog.New(Args{"name": "mike", "habitat": "land", "weight": 50.0, "bark": "ARF"})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "habitat", "weight", "bark"}, dog.FieldNames())
	assert.Equal(t, 50.0, mike.MustGet("weight"))

	_, err = dog.New(Args{"name": "mike", "habitat": "space", "weight": 50.0, "bark": "ARF"})
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = dog.New(Args{"name": "mike", "habitat": "land", "weight": 50.0})
	assert.ErrorIs(t, err, ErrMissingArgument)
}
