package store

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Op is a comparison operator. The values match the MongoDB query operators
// so a Filter can be handed to the document store unchanged.
type Op string

const (
	OpEq      Op = "$eq"
	OpNe      Op = "$ne"
	OpGt      Op = "$gt"
	OpGte     Op = "$gte"
	OpLt      Op = "$lt"
	OpLte     Op = "$lte"
	OpIn      Op = "$in"
	OpBetween Op = "$between"
)

// Condition restricts one field. Between uses Value as the inclusive lower
// bound and Upper as the inclusive upper bound; In expects Value to be []any.
type Condition struct {
	Field string
	Op    Op
	Value any
	Upper any
}

// Filter is a conjunction of conditions. The zero Filter matches everything.
type Filter []Condition

func Eq(field string, v any) Condition  { return Condition{Field: field, Op: OpEq, Value: v} }
func Ne(field string, v any) Condition  { return Condition{Field: field, Op: OpNe, Value: v} }
func Gt(field string, v any) Condition  { return Condition{Field: field, Op: OpGt, Value: v} }
func Gte(field string, v any) Condition { return Condition{Field: field, Op: OpGte, Value: v} }
func Lt(field string, v any) Condition  { return Condition{Field: field, Op: OpLt, Value: v} }
func Lte(field string, v any) Condition { return Condition{Field: field, Op: OpLte, Value: v} }

func In(field string, values ...any) Condition {
	return Condition{Field: field, Op: OpIn, Value: values}
}

func Between(field string, lower, upper any) Condition {
	return Condition{Field: field, Op: OpBetween, Value: lower, Upper: upper}
}

// Where builds a Filter from conditions.
func Where(conds ...Condition) Filter { return Filter(conds) }

// Fielder exposes stored fields by their persisted (BSON) name.
type Fielder interface {
	Field(name string) (any, bool)
}

// Matches reports whether r satisfies every condition. Unknown fields never match.
func (f Filter) Matches(r Fielder) bool {
	for _, c := range f {
		v, ok := r.Field(c.Field)
		if !ok || !c.matches(v) {
			return false
		}
	}
	return true
}

func (c Condition) matches(v any) bool {
	switch c.Op {
	case OpEq:
		return equal(v, c.Value)
	case OpNe:
		return !equal(v, c.Value)
	case OpGt:
		n, ok := compare(v, c.Value)
		return ok && n > 0
	case OpGte:
		n, ok := compare(v, c.Value)
		return ok && n >= 0
	case OpLt:
		n, ok := compare(v, c.Value)
		return ok && n < 0
	case OpLte:
		n, ok := compare(v, c.Value)
		return ok && n <= 0
	case OpIn:
		values, _ := c.Value.([]any)
		for _, want := range values {
			if equal(v, want) {
				return true
			}
		}
		return false
	case OpBetween:
		lo, okLo := compare(v, c.Value)
		hi, okHi := compare(v, c.Upper)
		return okLo && okHi && lo >= 0 && hi <= 0
	}
	return false
}

func (c Condition) String() string {
	if c.Op == OpBetween {
		return fmt.Sprintf("%s %s [%v, %v]", c.Field, c.Op, c.Value, c.Upper)
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

func (f Filter) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	n, ok := compare(a, b)
	return ok && n == 0
}

// compare orders two values of compatible kinds. Numbers of any width compare
// numerically; ok is false for incompatible kinds.
func compare(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmp.Compare(fa, fb), true
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		if !av {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
