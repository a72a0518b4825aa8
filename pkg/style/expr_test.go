package style

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseExpr_Refs(t *testing.T) {
	tests := []struct {
		src  string
		refs []string
	}{
		{"(1)", nil},
		{"(A)", []string{"A"}},
		{"(SSPACING_1 * 2)", []string{"SSPACING_1"}},
		{"((A + B) * -C / 2)", []string{"A", "B", "C"}},
	}
	for _, test := range tests {
		e, err := ParseExpr(test.src)
		if err != nil {
			t.Errorf("ParseExpr(%q) -> error %v", test.src, err)
			continue
		}
		if refs := e.Refs(); !reflect.DeepEqual(refs, test.refs) {
			t.Errorf("ParseExpr(%q).Refs() -> %v, want %v", test.src, refs, test.refs)
		}
	}
}

func TestParseExpr_Errors(t *testing.T) {
	for _, src := range []string{"1", "(", "(1", "(1 +)", "(1) x", "(a $ b)", "()", "(1e-)", "(2e - 3)"} {
		_, err := ParseExpr(src)
		var exprErr *ExprError
		if !errors.As(err, &exprErr) {
			t.Errorf("ParseExpr(%q) -> error %v, want *ExprError", src, err)
		}
	}
}

func TestExprEval(t *testing.T) {
	consts := Constants{
		"A":   Num(4),
		"B":   Num(2),
		"REC": Record{"top": Num(1)},
	}
	r := NewResolver(consts)
	tests := []struct {
		src  string
		want Value
	}{
		{"(A * 2)", Num(8)},
		{"(A + B * 3)", Num(10)},
		{"((A + B) * 3)", Num(18)},
		{"(A / B - 1)", Num(1)},
		{"(-A)", Num(-4)},
		{"(1.5)", Num(1.5)},
		{"(2e-3 * 2)", Num(0.004)},
		{"(1E+2 - A)", Num(96)},
		{"(3e2-A)", Num(296)},
		{"(REC)", Record{"top": Num(1)}},
	}
	for _, test := range tests {
		e, err := ParseExpr(test.src)
		if err != nil {
			t.Fatalf("ParseExpr(%q) -> error %v", test.src, err)
		}
		got, err := e.eval(r.Constant)
		if err != nil {
			t.Errorf("eval(%q) -> error %v", test.src, err)
		} else if !Equal(got, test.want) {
			t.Errorf("eval(%q) -> %s, want %s", test.src, Repr(got), Repr(test.want))
		}
	}
}

func TestExprEval_Errors(t *testing.T) {
	r := NewResolver(Constants{"REC": Record{}, "Z": Num(0)})
	for _, src := range []string{"(REC * 2)", "(1 / Z)", "(MISSING + 1)"} {
		e, err := ParseExpr(src)
		if err != nil {
			t.Fatalf("ParseExpr(%q) -> error %v", src, err)
		}
		if _, err := e.eval(r.Constant); err == nil {
			t.Errorf("eval(%q) -> nil error, want error", src)
		}
	}
}
