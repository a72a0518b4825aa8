package style

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func mustExpr(s string) *Expr {
	e, err := ParseExpr(s)
	if err != nil {
		panic(err)
	}
	return e
}

func TestMerge(t *testing.T) {
	base := Record{
		"width":   Enum("Fill"),
		"height":  Enum("Fit"),
		"padding": Record{"top": Num(4), "left": Num(4)},
	}
	overrides := Record{
		"height":  Num(30),
		"padding": Record{"left": Num(0)},
		"flow":    Enum("Down"),
	}
	want := Record{
		"width":   Enum("Fill"),
		"height":  Num(30),
		"padding": Record{"top": Num(4), "left": Num(0)},
		"flow":    Enum("Down"),
	}
	got := Merge(base, overrides)
	if !Equal(got, want) {
		t.Errorf("Merge -> %s, want %s", Repr(got), Repr(want))
	}
	// Inputs are untouched.
	if l, _ := base.Num("padding", "left"); l != 4 {
		t.Errorf("Merge modified base")
	}
}

func TestMerge_ScalarReplacesRecord(t *testing.T) {
	got := Merge(Record{"margin": Record{"top": Num(1)}}, Record{"margin": Num(0)})
	if !Equal(got, Record{"margin": Num(0)}) {
		t.Errorf("Merge -> %s", Repr(got))
	}
}

var spacingConsts = Constants{
	"SSPACING_0": Num(0),
	"SSPACING_1": Num(4),
	"SSPACING_2": mustExpr("(SSPACING_1 * 2)"),
	"SPACING_1": Record{
		"top": mustExpr("(SSPACING_1)"), "right": mustExpr("(SSPACING_1)"),
		"bottom": mustExpr("(SSPACING_1)"), "left": mustExpr("(SSPACING_1)"),
	},
}

func TestResolve_SubstitutesConstants(t *testing.T) {
	r := NewResolver(spacingConsts)
	got, err := r.Resolve(
		Record{"padding": mustExpr("(SPACING_1)"), "spacing": mustExpr("(SSPACING_1)")},
		Record{"padding": Record{"left": mustExpr("(SSPACING_2)")}},
	)
	if err != nil {
		t.Fatalf("Resolve -> error %v", err)
	}
	want := Record{
		"padding": Record{"top": Num(4), "right": Num(4), "bottom": Num(4), "left": Num(8)},
		"spacing": Num(4),
	}
	if !Equal(got, want) {
		t.Errorf("Resolve -> %s, want %s", Repr(got), Repr(want))
	}
}

func TestResolve_UndefinedConstant(t *testing.T) {
	r := NewResolver(spacingConsts)
	_, err := r.Resolve(Record{}, Record{"margin": Record{"left": mustExpr("(SSPACING_9 + 1)")}})
	var undef *UndefinedConstant
	if !errors.As(err, &undef) || undef.Name != "SSPACING_9" {
		t.Fatalf("Resolve -> error %v, want *UndefinedConstant for SSPACING_9", err)
	}
	if want := "margin: left: undefined constant SSPACING_9"; err.Error() != want {
		t.Errorf("error message %q, want %q", err.Error(), want)
	}
}

func TestResolve_ConstantCycle(t *testing.T) {
	r := NewResolver(Constants{
		"A": mustExpr("(B + 1)"),
		"B": mustExpr("(A * 2)"),
	})
	_, err := r.Resolve(Record{"x": mustExpr("(A)")}, nil)
	var cycle *ConstantCycle
	if !errors.As(err, &cycle) {
		t.Fatalf("Resolve -> error %v, want *ConstantCycle", err)
	}
	if got := cycle.Error(); got != "constant cycle: A -> B -> A" {
		t.Errorf("cycle message %q", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(spacingConsts)
	base := Record{"padding": mustExpr("(SPACING_1)"), "width": Enum("Fit")}
	once, err := r.Resolve(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := r.Resolve(once, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(once, twice) {
		t.Errorf("resolving twice changed the record: %s vs %s", Repr(once), Repr(twice))
	}
}

// Builds a record from generated numbers, prefixing keys to keep records built
// with different prefixes disjoint.
func numRecord(prefix string, m map[string]float64) Record {
	rec := make(Record, len(m))
	for k, v := range m {
		rec[prefix+k] = Num(v)
	}
	return rec
}

func TestResolve_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	numMap := gen.MapOf(gen.Identifier(), gen.Float64Range(-1000, 1000))
	r := NewResolver(nil)

	properties.Property("disjoint overrides commute", prop.ForAll(
		func(b, o1, o2 map[string]float64) bool {
			base := numRecord("", b)
			base["nested"] = numRecord("n_", b)
			over1 := numRecord("a_", o1)
			over1["nested"] = numRecord("a_", o1)
			over2 := numRecord("b_", o2)
			over2["nested"] = numRecord("b_", o2)

			x12, err := resolveChain(r, base, over1, over2)
			if err != nil {
				return false
			}
			x21, err := resolveChain(r, base, over2, over1)
			if err != nil {
				return false
			}
			return Equal(x12, x21)
		},
		numMap, numMap, numMap,
	))

	properties.Property("resolving in steps equals resolving the merged overrides", prop.ForAll(
		func(b, o1, o2 map[string]float64) bool {
			base := numRecord("", b)
			over1 := numRecord("a_", o1)
			over2 := numRecord("b_", o2)

			stepped, err := resolveChain(r, base, over1, over2)
			if err != nil {
				return false
			}
			merged, err := r.Resolve(base, Merge(over1, over2))
			if err != nil {
				return false
			}
			return Equal(stepped, merged)
		},
		numMap, numMap, numMap,
	))

	properties.Property("override wins and base is inherited", prop.ForAll(
		func(b, o map[string]float64) bool {
			base, over := numRecord("", b), numRecord("", o)
			got, err := r.Resolve(base, over)
			if err != nil {
				return false
			}
			for k, v := range got {
				if ov, ok := over[k]; ok {
					if v != ov {
						return false
					}
				} else if v != base[k] {
					return false
				}
			}
			return len(got) >= len(base) && len(got) >= len(over)
		},
		numMap, numMap,
	))

	properties.TestingRun(t)
}

func resolveChain(r *Resolver, base Record, overrides ...Record) (Record, error) {
	rec := base
	for _, o := range overrides {
		var err error
		rec, err = r.Resolve(rec, o)
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}
