package check

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errValue = errors.New("value error")
	errType  = errors.New("type error")
)

// parseError is a distinct error type for dynamic-type matching.
type parseError struct {
	input string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("cannot parse %q", e.input)
}

func TestRaisesMatchingPanicIsSuppressed(t *testing.T) {
	c, rec := newTestChecker()

	matched := c.Raises(errValue).Run(func() {
		panic(errValue)
	})

	assert.True(t, matched)
	assert.Equal(t, 0, rec.Len(),
		"a met expectation must not append to the log")
}

func TestRaisesMatchesWrappedErrors(t *testing.T) {
	c, rec := newTestChecker()

	matched := c.Raises(errValue).Run(func() {
		panic(fmt.Errorf("outer context: %w", errValue))
	})

	assert.True(t, matched)
	assert.Equal(t, 0, rec.Len())
}

func TestRaisesMatchesByDynamicType(t *testing.T) {
	c, rec := newTestChecker()

	scope := c.Raises(&parseError{}).Call(func() {
		panic(&parseError{input: "zzz"})
	})

	assert.True(t, scope.Matched())
	assert.Equal(t, 0, rec.Len())
}

func TestRaisesMatchesReflectType(t *testing.T) {
	c, rec := newTestChecker()

	matched := c.Raises(reflect.TypeOf("")).Run(func() {
		panic("a string panic")
	})

	assert.True(t, matched)
	assert.Equal(t, 0, rec.Len())
}

func TestRaisesNonMatchingPanicIsRecorded(t *testing.T) {
	c, rec := newTestChecker()

	scope := c.Raises(errValue)
	matched := scope.Run(func() {
		panic(errType)
	})

	assert.False(t, matched)
	assert.False(t, scope.Matched())
	assert.Equal(t, errType, scope.Observed())

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "type error", records[0].Message)
}

func TestRaisesNonMatchingUsesConfiguredMessage(t *testing.T) {
	c, rec := newTestChecker()

	c.Raises(errValue).WithMessage("wrong failure kind").Run(func() {
		panic(errType)
	})

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "wrong failure kind", records[0].Message)
}

func TestRaisesNonMatchingStopOnFailPropagates(t *testing.T) {
	c, rec := newTestChecker()
	rec.SetStopOnFail(true)

	assert.PanicsWithValue(t, errType, func() {
		c.Raises(errValue).Run(func() {
			panic(errType)
		})
	})

	assert.Equal(t, 0, rec.Len())
}

func TestRaisesNothingRaisedIsRecorded(t *testing.T) {
	c, rec := newTestChecker()

	scope := c.Raises(errValue)
	matched := scope.Run(func() {})

	assert.False(t, matched)
	assert.Nil(t, scope.Observed())

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(
		t, `expected "value error" was not raised`,
		records[0].Message,
	)
}

func TestRaisesNothingRaisedUsesConfiguredMessage(t *testing.T) {
	c, rec := newTestChecker()

	c.Raises(errValue, errType).WithMessage("nothing happened").
		Run(func() {})

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "nothing happened", records[0].Message)
}

func TestRaisesNothingRaisedStopOnFail(t *testing.T) {
	c, rec := newTestChecker()
	rec.SetStopOnFail(true)

	assert.Panics(t, func() {
		c.Raises(errValue).Run(func() {})
	})

	assert.Equal(t, 0, rec.Len())
}

func TestRaisesMultipleTargets(t *testing.T) {
	c, rec := newTestChecker()

	matched := c.Raises(errValue, errType).Run(func() {
		panic(errType)
	})

	assert.True(t, matched)
	assert.Equal(t, 0, rec.Len())
}

func TestRaisesMessageDiscardedOnMatch(t *testing.T) {
	c, rec := newTestChecker()

	scope := c.Raises(errValue).WithMessage("kept?")
	scope.Run(func() { panic(errValue) })

	// Reuse the scope: the earlier message must be gone.
	scope.Run(func() { panic(errType) })

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "type error", records[0].Message)
}

func TestRaisesCallReturnsScope(t *testing.T) {
	c, _ := newTestChecker()

	scope := c.Raises(errValue)
	returned := scope.Call(func() { panic(errValue) }, "msg")

	assert.Same(t, scope, returned)
	assert.True(t, returned.Matched())
	assert.Equal(t, errValue, returned.Observed())
}

func TestRaisesSingleShotObservesOneFailure(t *testing.T) {
	c, rec := newTestChecker()

	executedSecond := false
	c.Raises(errValue).Run(func() {
		panic(errType)
		// unreachable: control cannot resume after the panic
	})
	c.Raises(errValue).Run(func() {
		executedSecond = true
		panic(errValue)
	})

	assert.True(t, executedSecond,
		"independent expectations need independent activations")
	assert.Equal(t, 1, rec.Len())
}

func TestDescribeTargets(t *testing.T) {
	tests := []struct {
		name    string
		targets []any
		want    string
	}{
		{"none", nil, "panic"},
		{"single error", []any{errValue}, `"value error"`},
		{
			"two errors", []any{errValue, errType},
			`"value error" or "type error"`,
		},
		{
			"reflect type", []any{reflect.TypeOf("")},
			"string",
		},
		{"sample value", []any{42}, "int"},
		{
			"error by message", []any{&parseError{input: "x"}},
			`"cannot parse \"x\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeTargets(tt.targets))
		})
	}
}

func TestRaisesPackageLevel(t *testing.T) {
	Std().Recorder().Clear()
	t.Cleanup(Std().Recorder().Clear)

	matched := Raises(errValue).Run(func() {
		panic(errValue)
	})

	assert.True(t, matched)
	assert.Empty(t, Std().Recorder().Failures())
}
