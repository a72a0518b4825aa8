// Package tt supports table-driven tests with little boilerplate.
//
// A test is a function under test plus a table of cases:
//
//	tt.Test(t, tt.Fn("ParseColor", style.ParseColor), tt.Table{
//		tt.Args("#f").Rets(style.RGBA(255, 255, 255, 255), nil),
//	})
//
// Mismatches are reported with a diff produced by go-cmp.
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and offers
// setters that augment and return itself; those calls can be chained like
// Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. The arguments may implement the
// Matcher interface, in which case its Match method is called with the actual
// return value. Otherwise, cmp.Equal with CommonCmpOpt is used.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the string for formatting arguments in test error messages,
// and returns fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// CommonCmpOpt is the option used when comparing return values. It treats nil
// and empty slices and maps as equal.
var CommonCmpOpt = cmp.Options{
	cmpopts.EquateEmpty(),
}

// Test tests a function against test cases.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var args string
			if fn.argsFmt == "" {
				args = sprintArgs(test.args...)
			} else {
				args = fmt.Sprintf(fn.argsFmt, test.args...)
			}
			want, got := printable(retsMatcher), printable(rets)
			var diff string
			if len(rets) == 1 {
				diff = cmp.Diff(want[0], got[0], CommonCmpOpt)
			} else {
				diff = cmp.Diff(want, got, CommonCmpOpt)
			}
			t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s", fn.name, args, diff)
		}
	}
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorAs returns a Matcher that matches errors for which errors.As with a
// value of the same type as target succeeds.
func ErrorAs(target error) Matcher { return errorAsMatcher{reflect.TypeOf(target)} }

type errorAsMatcher struct{ typ reflect.Type }

func (m errorAsMatcher) Match(v RetValue) bool {
	err, ok := v.(error)
	for ok && err != nil {
		if reflect.TypeOf(err) == m.typ {
			return true
		}
		switch e := err.(type) {
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		case interface{ Unwrap() []error }:
			for _, sub := range e.Unwrap() {
				if m.Match(sub) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}

func match(matchers, actual []any) bool {
	for i, matcher := range matchers {
		if !matchOne(matcher, actual[i]) {
			return false
		}
	}
	return true
}

func matchOne(m, a any) bool {
	if m, ok := m.(Matcher); ok {
		return m.Match(a)
	}
	// Errors of different dynamic types are still equal if their messages
	// are; cmp only applies the error comparer when the static types agree.
	if me, ok := m.(error); ok {
		ae, ok := a.(error)
		return ok && me.Error() == ae.Error()
	}
	return cmp.Equal(m, a, CommonCmpOpt)
}

// Replaces errors and matchers with strings, so that cmp.Diff never needs to
// look into their unexported fields.
func printable(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case error:
			out[i] = "error: " + v.Error()
		case Matcher:
			out[i] = fmt.Sprintf("matcher %T", v)
		default:
			out[i] = v
		}
	}
	return out
}

func sprintArgs(args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, arg)
	}
	return sb.String()
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	fnType := reflect.TypeOf(fn)
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value; use the zero value of
			// the parameter type instead.
			argsReflect[i] = reflect.Zero(paramType(fnType, i))
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}
