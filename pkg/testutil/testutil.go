// Package testutil contains common test utilities.
package testutil

import "os"

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Set assigns v to *p, and restores the old value on cleanup.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	c.Cleanup(func() { *p = old })
	*p = v
}

// Setenv sets an environment variable until cleanup. It returns value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv removes an environment variable until cleanup.
func Unsetenv(c Cleanuper, name string) {
	restoreEnv(c, name)
	os.Unsetenv(name)
}

func restoreEnv(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}
