//go:build !ci

package frozenerrors

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op in non-CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
}

// DebugAssertNotNilf is a no-op in non-CI builds.
func DebugAssertNotNilf(obj any, format string, args ...any) {
}
