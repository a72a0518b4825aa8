package style

import (
	"fmt"
	"strings"
)

// Constants maps constant names to their unresolved values.
type Constants map[string]Value

// UndefinedConstant is returned when an expression refers to a constant that
// is not in the active constant table.
type UndefinedConstant struct {
	Name string
}

func (e *UndefinedConstant) Error() string {
	return "undefined constant " + e.Name
}

// ConstantCycle is returned when constants refer to each other in a cycle.
type ConstantCycle struct {
	Names []string
}

func (e *ConstantCycle) Error() string {
	return "constant cycle: " + strings.Join(e.Names, " -> ")
}

// Merge returns a new record that has all properties of base, overridden by
// those of overrides. When both sides hold a record for the same key, the two
// records are merged recursively instead of being replaced. Constants are not
// substituted.
func Merge(base, overrides Record) Record {
	merged := make(Record, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = clone(v)
	}
	for k, v := range overrides {
		if baseRec, ok := merged[k].(Record); ok {
			if overRec, ok := v.(Record); ok {
				merged[k] = Merge(baseRec, overRec)
				continue
			}
		}
		merged[k] = clone(v)
	}
	return merged
}

func clone(v Value) Value {
	if rec, ok := v.(Record); ok {
		return Merge(nil, rec)
	}
	return v
}

// Resolver resolves style records against a constant table. Resolved
// constants are memoized, so a Resolver should be discarded when its
// constants change.
type Resolver struct {
	consts   Constants
	resolved map[string]Value
	// Names of constants being resolved, in order; used for detecting
	// cycles.
	stack []string
}

// NewResolver creates a Resolver for the given constant table.
func NewResolver(consts Constants) *Resolver {
	return &Resolver{consts: consts, resolved: make(map[string]Value)}
}

// Resolve returns the result of overriding base with overrides, with all
// expressions substituted. Both inputs are substituted before they are
// merged, so that an override can refine a record-valued constant key by key.
//
// The error, if any, wraps an *UndefinedConstant, a *ConstantCycle or an
// arithmetic error, prefixed with the path of the offending property.
func (r *Resolver) Resolve(base, overrides Record) (Record, error) {
	b, err := r.Substitute(base)
	if err != nil {
		return nil, err
	}
	o, err := r.Substitute(overrides)
	if err != nil {
		return nil, err
	}
	return Merge(b, o), nil
}

// Substitute returns a copy of the record with all expressions replaced by
// their values.
func (r *Resolver) Substitute(rec Record) (Record, error) {
	out := make(Record, len(rec))
	for k, v := range rec {
		sv, err := r.substituteValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = sv
	}
	return out, nil
}

func (r *Resolver) substituteValue(v Value) (Value, error) {
	switch v := v.(type) {
	case *Expr:
		return v.eval(r.Constant)
	case Record:
		return r.Substitute(v)
	}
	return v, nil
}

// Constant returns the resolved value of a named constant.
func (r *Resolver) Constant(name string) (Value, error) {
	if v, ok := r.resolved[name]; ok {
		return v, nil
	}
	for i, visiting := range r.stack {
		if visiting == name {
			cycle := append(append([]string(nil), r.stack[i:]...), name)
			return nil, &ConstantCycle{cycle}
		}
	}
	raw, ok := r.consts[name]
	if !ok {
		return nil, &UndefinedConstant{name}
	}

	r.stack = append(r.stack, name)
	v, err := r.substituteValue(raw)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return nil, err
	}
	r.resolved[name] = v
	return v, nil
}
