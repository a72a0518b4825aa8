package design

import (
	_ "embed"
	"sync"

	"src.liveui.sh/pkg/must"
)

//go:embed theme.yaml
var themeSource []byte

var theme = sync.OnceValue(func() *Design { return must.OK1(Parse(themeSource)) })

// Theme returns the builtin theme: a design without a root that defines the
// default style of each kind of node, a few base styles for slide decks and
// common constants.
//
// The returned Design is shared and must not be modified.
func Theme() *Design { return theme() }
