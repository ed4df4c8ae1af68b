package check

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatValue renders a value for a failure message. Strings are
// quoted, composite values dump through go-spew, everything else
// renders with plain formatting.
func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array,
		reflect.Struct, reflect.Pointer:
		return strings.TrimSpace(spewConfig.Sdump(v))
	}
	return fmt.Sprintf("%v", v)
}

// message picks the user-supplied message when one was given,
// otherwise derives the default. The default is computed lazily so
// passing checks never pay for formatting.
func message(msg []string, derive func() string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return derive()
}

// diffStrings renders a unified diff for multi-line string
// comparisons, or "" when no diff is available.
func diffStrings(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	if err != nil || diff == "" {
		return ""
	}
	return "\n\nDiff:\n" + diff
}

// notEqualMessage derives the default failure text for Equal,
// appending a unified diff when both sides are multi-line strings.
func notEqualMessage(expected, actual any) string {
	text := fmt.Sprintf(
		"not equal:\nexpected: %s\nactual:   %s",
		formatValue(expected), formatValue(actual),
	)

	es, eok := expected.(string)
	as, aok := actual.(string)
	if eok && aok &&
		(strings.Contains(es, "\n") || strings.Contains(as, "\n")) {
		text += diffStrings(es, as)
	}
	return text
}
