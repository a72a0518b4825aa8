package input

import (
	"testing"

	"src.liveui.sh/pkg/tt"
)

var kTests = []struct {
	k1 Key
	k2 Key
}{
	{K('a'), Key{'a', 0}},
	{K('a', Alt), Key{'a', Alt}},
	{K('a', Alt, Ctrl), Key{'a', Alt | Ctrl}},
}

func TestK(t *testing.T) {
	for _, test := range kTests {
		if test.k1 != test.k2 {
			t.Errorf("%v != %v", test.k1, test.k2)
		}
	}
}

func TestKeyString(t *testing.T) {
	tt.Test(t, tt.Fn("Key.String", Key.String), tt.Table{
		tt.Args(K('a')).Rets("a"),
		tt.Args(K('a', Alt)).Rets("Alt-a"),
		tt.Args(K('a', Ctrl, Alt, Shift)).Rets("Ctrl-Alt-Shift-a"),
		tt.Args(K(Tab)).Rets("Tab"),
		tt.Args(K(Enter)).Rets("Enter"),
		tt.Args(K(F1)).Rets("F1"),
		tt.Args(K(Left)).Rets("Left"),
		tt.Args(K(-1000)).Rets("(bad function key 1000)"),
	})
}

func TestParseKey(t *testing.T) {
	tt.Test(t, tt.Fn("ParseKey", ParseKey), tt.Table{
		tt.Args("x").Rets(K('x'), nil),
		tt.Args("Tab").Rets(K(Tab), nil),
		tt.Args("Enter").Rets(K(Enter), nil),
		tt.Args("Escape").Rets(K(Escape), nil),
		tt.Args("F1").Rets(K(F1), nil),
		tt.Args("Right").Rets(K(Right), nil),

		// Alt- keys are case-sensitive.
		tt.Args("a-x").Rets(Key{'x', Alt}, nil),
		tt.Args("a-X").Rets(Key{'X', Alt}, nil),

		// Ctrl- keys are case-insensitive.
		tt.Args("C-x").Rets(Key{'X', Ctrl}, nil),
		tt.Args("C-X").Rets(Key{'X', Ctrl}, nil),

		tt.Args("Shift+F1").Rets(Key{F1, Shift}, nil),
		tt.Args("-").Rets(K('-'), nil),

		tt.Args("X-y").Rets(Key{}, tt.Any),
		tt.Args("Foo").Rets(Key{}, tt.Any),
	})
}
