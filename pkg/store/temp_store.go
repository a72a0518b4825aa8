package store

import (
	"path/filepath"

	"src.liveui.sh/pkg/must"
	"src.liveui.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file, which is closed
// and removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st := must.OK1(NewStore(filepath.Join(dir, "db")))
	c.Cleanup(func() { must.OK(st.Close()) })
	return st
}
