package render

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type status int

const (
	statusOpen status = iota + 1
	statusClosed
)

type color string

type flag bool

func TestClassify(t *testing.T) {
	var nilInt *int
	five := 5
	empty := ""
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		class Class
		bound any
	}{
		{"nil", nil, ClassNull, nil},
		{"nil pointer", nilInt, ClassNull, nil},
		{"true", true, ClassBool, nil},
		{"named bool", flag(true), ClassBool, nil},
		{"empty string", "", ClassEmptyString, nil},
		{"pointer to empty string", &empty, ClassEmptyString, nil},
		{"string", "abc", ClassBound, "abc"},
		{"int", 5, ClassBound, 5},
		{"pointer to int", &five, ClassBound, 5},
		{"enum ordinal", statusClosed, ClassBound, int64(2)},
		{"string enum", color("red"), ClassBound, "red"},
		{"bytes", []byte{1, 2}, ClassBound, []byte{1, 2}},
		{"uuid", id, ClassBound, id},
		{"time", when, ClassBound, when},
		{"decimal", decimal.RequireFromString("1.5"), ClassBound, decimal.RequireFromString("1.5")},
		{"invalid null uuid", uuid.NullUUID{}, ClassNull, nil},
		{"null uuid", uuid.NullUUID{UUID: id, Valid: true}, ClassBound, id},
		{"invalid null decimal", decimal.NullDecimal{}, ClassNull, nil},
		{"null decimal", decimal.NewNullDecimal(decimal.RequireFromString("1.5")), ClassBound, decimal.RequireFromString("1.5")},
		{"pointer to invalid null decimal", &decimal.NullDecimal{}, ClassNull, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.value)
			assert.Equal(t, tt.class, got.Class)
			if tt.class == ClassBound {
				assert.Equal(t, tt.bound, got.Bound)
			}
		})
	}
}

func TestClassify_Bool(t *testing.T) {
	assert.True(t, Classify(true).Bool)
	assert.False(t, Classify(false).Bool)
}

func TestClassify_Collections(t *testing.T) {
	c := Classify([]int{1, 2, 3})
	assert.Equal(t, ClassCollection, c.Class)
	assert.Equal(t, []any{1, 2, 3}, c.Members)

	arr := Classify([2]string{"a", "b"})
	assert.Equal(t, ClassCollection, arr.Class)
	assert.Equal(t, []any{"a", "b"}, arr.Members)

	nested := Classify([]any{1, []int{2}})
	assert.Equal(t, ClassCollection, nested.Class)
	assert.Len(t, nested.Members, 2)

	var nilSlice []int
	assert.True(t, IsEmptyCollection(nilSlice))
	assert.True(t, IsEmptyCollection([]string{}))
	assert.False(t, IsEmptyCollection([]int{1}))
	assert.False(t, IsEmptyCollection([]byte{}))
	assert.False(t, IsEmptyCollection(5))
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key(5), Key(5))
	assert.NotEqual(t, Key(5), Key(int64(5)))
	assert.NotEqual(t, Key(5), Key("5"))
	assert.Equal(t, Key(decimal.RequireFromString("1.50")), Key(decimal.RequireFromString("1.5")))
	assert.Equal(t, Key([]byte{0xab}), "[]byte:ab")

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, Key(id), Key(Classify(uuid.NullUUID{UUID: id, Valid: true}).Bound))
	assert.Equal(t, Key(decimal.RequireFromString("1.5")),
		Key(Classify(decimal.NewNullDecimal(decimal.RequireFromString("1.50"))).Bound))

	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(a.Add(time.Nanosecond)))
}

func TestParams_Dedup(t *testing.T) {
	p := NewParams()
	assert.Equal(t, 0, p.Bind(5))
	assert.Equal(t, 1, p.Bind("x"))
	assert.Equal(t, 0, p.Bind(5))
	assert.Equal(t, 2, p.Bind(int64(5)))
	assert.Equal(t, 1, p.Bind("x"))

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []any{5, "x", int64(5)}, p.Values())
}

func TestParams_ValuesIsACopy(t *testing.T) {
	p := NewParams()
	p.Bind(1)
	v := p.Values()
	v[0] = 2
	assert.Equal(t, []any{1}, p.Values())
}
