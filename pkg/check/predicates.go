package check

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Default tolerances for approximate float comparison, matching the
// conventional relative-then-absolute tolerance scheme.
const (
	defaultRelTolerance = 1e-6
	defaultAbsTolerance = 1e-12
)

// Equal checks that expected and actual are deeply equal. A failed
// comparison is recorded and Equal returns false; the optional
// trailing message replaces the derived failure text.
func (c *Checker) Equal(expected, actual any, msg ...string) bool {
	return c.Do(func() {
		if objectsEqual(expected, actual) {
			return
		}
		Fail(message(msg, func() string {
			return notEqualMessage(expected, actual)
		}))
	})
}

// Equal checks deep equality on the default recorder.
func Equal(expected, actual any, msg ...string) bool {
	return std.Equal(expected, actual, msg...)
}

// NotEqual checks that expected and actual are not deeply equal.
func (c *Checker) NotEqual(expected, actual any, msg ...string) bool {
	return c.Do(func() {
		if !objectsEqual(expected, actual) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"unexpectedly equal: %s", formatValue(actual),
			)
		}))
	})
}

// NotEqual checks deep inequality on the default recorder.
func NotEqual(expected, actual any, msg ...string) bool {
	return std.NotEqual(expected, actual, msg...)
}

// Same checks that expected and actual are the same pointer.
func (c *Checker) Same(expected, actual any, msg ...string) bool {
	return c.Do(func() {
		if samePointers(expected, actual) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"not the same pointer:\nexpected: %s\nactual:   %s",
				formatValue(expected), formatValue(actual),
			)
		}))
	})
}

// Same checks pointer identity on the default recorder.
func Same(expected, actual any, msg ...string) bool {
	return std.Same(expected, actual, msg...)
}

// NotSame checks that expected and actual are not the same pointer.
func (c *Checker) NotSame(expected, actual any, msg ...string) bool {
	return c.Do(func() {
		if !samePointers(expected, actual) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"unexpectedly the same pointer: %s",
				formatValue(actual),
			)
		}))
	})
}

// NotSame checks pointer non-identity on the default recorder.
func NotSame(expected, actual any, msg ...string) bool {
	return std.NotSame(expected, actual, msg...)
}

// True checks that value is true.
func (c *Checker) True(value bool, msg ...string) bool {
	return c.Do(func() {
		if value {
			return
		}
		Fail(message(msg, func() string {
			return "expected true, got false"
		}))
	})
}

// True checks the value on the default recorder.
func True(value bool, msg ...string) bool {
	return std.True(value, msg...)
}

// False checks that value is false.
func (c *Checker) False(value bool, msg ...string) bool {
	return c.Do(func() {
		if !value {
			return
		}
		Fail(message(msg, func() string {
			return "expected false, got true"
		}))
	})
}

// False checks the value on the default recorder.
func False(value bool, msg ...string) bool {
	return std.False(value, msg...)
}

// Nil checks that value is nil, including typed nils held in
// interfaces.
func (c *Checker) Nil(value any, msg ...string) bool {
	return c.Do(func() {
		if isNil(value) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"expected nil, got %s", formatValue(value),
			)
		}))
	})
}

// Nil checks for nil on the default recorder.
func Nil(value any, msg ...string) bool {
	return std.Nil(value, msg...)
}

// NotNil checks that value is not nil.
func (c *Checker) NotNil(value any, msg ...string) bool {
	return c.Do(func() {
		if !isNil(value) {
			return
		}
		Fail(message(msg, func() string {
			return "expected a non-nil value"
		}))
	})
}

// NotNil checks for non-nil on the default recorder.
func NotNil(value any, msg ...string) bool {
	return std.NotNil(value, msg...)
}

// Contains checks that container holds element: substring for
// strings, element for slices and arrays, key for maps.
func (c *Checker) Contains(container, element any, msg ...string) bool {
	return c.Do(func() {
		ok, found := containsElement(container, element)
		if !ok {
			Fail(message(msg, func() string {
				return fmt.Sprintf(
					"%s is not a container", formatValue(container),
				)
			}))
			return
		}
		if found {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"%s does not contain %s",
				formatValue(container), formatValue(element),
			)
		}))
	})
}

// Contains checks membership on the default recorder.
func Contains(container, element any, msg ...string) bool {
	return std.Contains(container, element, msg...)
}

// NotContains checks that container does not hold element.
func (c *Checker) NotContains(container, element any, msg ...string) bool {
	return c.Do(func() {
		ok, found := containsElement(container, element)
		if !ok {
			Fail(message(msg, func() string {
				return fmt.Sprintf(
					"%s is not a container", formatValue(container),
				)
			}))
			return
		}
		if !found {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"%s unexpectedly contains %s",
				formatValue(container), formatValue(element),
			)
		}))
	})
}

// NotContains checks non-membership on the default recorder.
func NotContains(container, element any, msg ...string) bool {
	return std.NotContains(container, element, msg...)
}

// IsType checks that value's dynamic type matches want. want may be
// a sample value or a reflect.Type; an interface type matches any
// value implementing it.
func (c *Checker) IsType(value, want any, msg ...string) bool {
	return c.Do(func() {
		if typeMatches(value, want) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"expected type %s, got %T",
				typeName(want), value,
			)
		}))
	})
}

// IsType checks the dynamic type on the default recorder.
func IsType(value, want any, msg ...string) bool {
	return std.IsType(value, want, msg...)
}

// NotIsType checks that value's dynamic type does not match want.
func (c *Checker) NotIsType(value, want any, msg ...string) bool {
	return c.Do(func() {
		if !typeMatches(value, want) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"value unexpectedly has type %s", typeName(want),
			)
		}))
	})
}

// NotIsType checks the dynamic type on the default recorder.
func NotIsType(value, want any, msg ...string) bool {
	return std.NotIsType(value, want, msg...)
}

// Greater checks that a > b. Both values must share an orderable
// kind: signed integers, unsigned integers, floats, or strings.
func (c *Checker) Greater(a, b any, msg ...string) bool {
	return c.ordered(a, b, ">", msg, func(r int) bool { return r > 0 })
}

// Greater checks ordering on the default recorder.
func Greater(a, b any, msg ...string) bool {
	return std.Greater(a, b, msg...)
}

// GreaterEqual checks that a >= b.
func (c *Checker) GreaterEqual(a, b any, msg ...string) bool {
	return c.ordered(a, b, ">=", msg, func(r int) bool { return r >= 0 })
}

// GreaterEqual checks ordering on the default recorder.
func GreaterEqual(a, b any, msg ...string) bool {
	return std.GreaterEqual(a, b, msg...)
}

// Less checks that a < b.
func (c *Checker) Less(a, b any, msg ...string) bool {
	return c.ordered(a, b, "<", msg, func(r int) bool { return r < 0 })
}

// Less checks ordering on the default recorder.
func Less(a, b any, msg ...string) bool {
	return std.Less(a, b, msg...)
}

// LessEqual checks that a <= b.
func (c *Checker) LessEqual(a, b any, msg ...string) bool {
	return c.ordered(a, b, "<=", msg, func(r int) bool { return r <= 0 })
}

// LessEqual checks ordering on the default recorder.
func LessEqual(a, b any, msg ...string) bool {
	return std.LessEqual(a, b, msg...)
}

func (c *Checker) ordered(
	a, b any, op string, msg []string, holds func(int) bool,
) bool {
	return c.Do(func() {
		r, ok := compareValues(a, b)
		if !ok {
			Fail(message(msg, func() string {
				return fmt.Sprintf(
					"cannot order values of types %T and %T", a, b,
				)
			}))
			return
		}
		if holds(r) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"expected %s %s %s",
				formatValue(a), op, formatValue(b),
			)
		}))
	})
}

// AlmostEqual checks that a is within the default relative (1e-6)
// or absolute (1e-12) tolerance of b.
func (c *Checker) AlmostEqual(a, b float64, msg ...string) bool {
	return c.AlmostEqualWithin(
		a, b, defaultRelTolerance, defaultAbsTolerance, msg...,
	)
}

// AlmostEqual checks approximate equality on the default recorder.
func AlmostEqual(a, b float64, msg ...string) bool {
	return std.AlmostEqual(a, b, msg...)
}

// NotAlmostEqual checks that a is outside the default tolerance
// of b.
func (c *Checker) NotAlmostEqual(a, b float64, msg ...string) bool {
	return c.NotAlmostEqualWithin(
		a, b, defaultRelTolerance, defaultAbsTolerance, msg...,
	)
}

// NotAlmostEqual checks approximate inequality on the default
// recorder.
func NotAlmostEqual(a, b float64, msg ...string) bool {
	return std.NotAlmostEqual(a, b, msg...)
}

// AlmostEqualWithin checks that a is within max(rel*|b|, abs) of b.
func (c *Checker) AlmostEqualWithin(
	a, b, rel, abs float64, msg ...string,
) bool {
	return c.Do(func() {
		if withinTolerance(a, b, rel, abs) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"%v is not approximately %v (rel=%g, abs=%g)",
				a, b, rel, abs,
			)
		}))
	})
}

// AlmostEqualWithin checks approximate equality with explicit
// tolerances on the default recorder.
func AlmostEqualWithin(a, b, rel, abs float64, msg ...string) bool {
	return std.AlmostEqualWithin(a, b, rel, abs, msg...)
}

// NotAlmostEqualWithin checks that a is outside max(rel*|b|, abs)
// of b.
func (c *Checker) NotAlmostEqualWithin(
	a, b, rel, abs float64, msg ...string,
) bool {
	return c.Do(func() {
		if !withinTolerance(a, b, rel, abs) {
			return
		}
		Fail(message(msg, func() string {
			return fmt.Sprintf(
				"%v is unexpectedly approximately %v (rel=%g, abs=%g)",
				a, b, rel, abs,
			)
		}))
	})
}

// NotAlmostEqualWithin checks approximate inequality with explicit
// tolerances on the default recorder.
func NotAlmostEqualWithin(a, b, rel, abs float64, msg ...string) bool {
	return std.NotAlmostEqualWithin(a, b, rel, abs, msg...)
}

// objectsEqual reports deep equality, comparing byte slices by
// content.
func objectsEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}

	eb, eok := expected.([]byte)
	ab, aok := actual.([]byte)
	if eok && aok {
		return bytes.Equal(eb, ab)
	}
	if eok != aok {
		return false
	}
	return reflect.DeepEqual(expected, actual)
}

// isNil reports whether v is nil, including a typed nil held in an
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice,
		reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// samePointers reports whether a and b are pointers of the same
// type to the same address.
func samePointers(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() != reflect.Pointer || bv.Kind() != reflect.Pointer {
		return false
	}
	return av.Type() == bv.Type() && av.Pointer() == bv.Pointer()
}

// containsElement reports (isContainer, found) for membership of
// element in container.
func containsElement(container, element any) (ok, found bool) {
	if container == nil {
		return false, false
	}

	cv := reflect.ValueOf(container)
	switch cv.Kind() {
	case reflect.String:
		es, eok := element.(string)
		if !eok {
			return false, false
		}
		return true, strings.Contains(cv.String(), es)
	case reflect.Map:
		for _, key := range cv.MapKeys() {
			if objectsEqual(key.Interface(), element) {
				return true, true
			}
		}
		return true, false
	case reflect.Slice, reflect.Array:
		for i := 0; i < cv.Len(); i++ {
			if objectsEqual(cv.Index(i).Interface(), element) {
				return true, true
			}
		}
		return true, false
	}
	return false, false
}

// typeMatches reports whether value's dynamic type matches want
// (a sample value or reflect.Type).
func typeMatches(value, want any) bool {
	vt := reflect.TypeOf(value)

	wt, ok := want.(reflect.Type)
	if !ok {
		wt = reflect.TypeOf(want)
	}
	if wt == nil {
		return vt == nil
	}
	if vt == wt {
		return true
	}
	return wt.Kind() == reflect.Interface && vt != nil &&
		vt.Implements(wt)
}

// typeName renders the expected type for failure messages.
func typeName(want any) string {
	if t, ok := want.(reflect.Type); ok {
		return t.String()
	}
	return fmt.Sprintf("%T", want)
}

// compareValues orders a against b, returning false when the two
// values are not both numeric and not both strings. Mixed numeric
// kinds widen to float64 before comparing.
func compareValues(a, b any) (int, bool) {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return 0, false
	}

	switch {
	case av.CanInt() && bv.CanInt():
		return cmp.Compare(av.Int(), bv.Int()), true
	case av.CanUint() && bv.CanUint():
		return cmp.Compare(av.Uint(), bv.Uint()), true
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return strings.Compare(av.String(), bv.String()), true
	}

	af, aok := numericValue(av)
	bf, bok := numericValue(bv)
	if aok && bok {
		return cmp.Compare(af, bf), true
	}
	return 0, false
}

// numericValue widens an int, uint, or float value to float64,
// reporting false for any other kind.
func numericValue(v reflect.Value) (float64, bool) {
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	}
	return 0, false
}

// withinTolerance reports whether actual is within
// max(rel*|expected|, abs) of expected. NaN never matches anything.
func withinTolerance(actual, expected, rel, abs float64) bool {
	if math.IsNaN(actual) || math.IsNaN(expected) {
		return false
	}
	if actual == expected {
		return true
	}
	if math.IsInf(actual, 0) || math.IsInf(expected, 0) {
		return false
	}
	tol := math.Max(rel*math.Abs(expected), abs)
	return math.Abs(actual-expected) <= tol
}
