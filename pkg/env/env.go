// Package env keeps names of environment variables with special significance to
// liveui.
package env

// Environment variables with special significance to liveui.
//
// LIVEUI_TEST_TIME_SCALE is only significant when running unit tests.
const (
	LIVEUI_DB              = "LIVEUI_DB"
	LIVEUI_LOG             = "LIVEUI_LOG"
	LIVEUI_TEST_TIME_SCALE = "LIVEUI_TEST_TIME_SCALE"
)
