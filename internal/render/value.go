package render

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Class is the encoding a constant value receives.
type Class int

const (
	// ClassNull renders the NULL literal.
	ClassNull Class = iota
	// ClassBool renders 1 or 0.
	ClassBool
	// ClassEmptyString renders ''.
	ClassEmptyString
	// ClassCollection renders the comma-joined encoding of its members.
	ClassCollection
	// ClassBound renders a bound parameter.
	ClassBound
)

// Value is a classified constant.
type Value struct {
	Bound   any
	Members []any
	Class   Class
	Bool    bool
}

// Classify decides how a constant value is encoded. Pointers are followed,
// named integer and string types are coerced to their underlying value, and
// slices and arrays other than byte sequences are collections. The nullable
// UUID and decimal wrappers are NULL when invalid and bind their inner value
// otherwise, so they compare and deduplicate like the plain types.
func Classify(v any) Value {
	if v == nil {
		return Value{Class: ClassNull}
	}

	switch x := v.(type) {
	case bool:
		return Value{Class: ClassBool, Bool: x}
	case string:
		if x == "" {
			return Value{Class: ClassEmptyString}
		}
		return Value{Class: ClassBound, Bound: x}
	case []byte, time.Time:
		return Value{Class: ClassBound, Bound: x}
	case uuid.NullUUID:
		if !x.Valid {
			return Value{Class: ClassNull}
		}
		return Value{Class: ClassBound, Bound: x.UUID}
	case decimal.NullDecimal:
		if !x.Valid {
			return Value{Class: ClassNull}
		}
		return Value{Class: ClassBound, Bound: x.Decimal}
	case driver.Valuer:
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return Value{Class: ClassNull}
			}
			if elem, ok := rv.Elem().Interface().(driver.Valuer); ok {
				return Classify(elem)
			}
		}
		return Value{Class: ClassBound, Bound: x}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{Class: ClassNull}
		}
		return Classify(rv.Elem().Interface())
	case reflect.Bool:
		return Value{Class: ClassBool, Bool: rv.Bool()}
	case reflect.String:
		if rv.Len() == 0 {
			return Value{Class: ClassEmptyString}
		}
		return Value{Class: ClassBound, Bound: rv.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Type().PkgPath() != "" {
			return Value{Class: ClassBound, Bound: rv.Int()}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Type().PkgPath() != "" {
			return Value{Class: ClassBound, Bound: rv.Uint()}
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Value{Class: ClassBound, Bound: v}
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Value{Class: ClassCollection}
		}
		members := make([]any, rv.Len())
		for i := range members {
			members[i] = rv.Index(i).Interface()
		}
		return Value{Class: ClassCollection, Members: members}
	}

	return Value{Class: ClassBound, Bound: v}
}

// IsEmptyCollection reports whether v is statically known to be a
// collection with no members.
func IsEmptyCollection(v any) bool {
	c := Classify(v)
	return c.Class == ClassCollection && len(c.Members) == 0
}

// Key returns the canonical encoding used to deduplicate bound values.
// Values of different types never share a key; decimals print without
// trailing zeros, so 1.5 and 1.50 do.
func Key(v any) string {
	switch x := v.(type) {
	case time.Time:
		return "time.Time:" + x.Format(time.RFC3339Nano)
	case []byte:
		return "[]byte:" + hex.EncodeToString(x)
	}
	return fmt.Sprintf("%T:%v", v, v)
}
