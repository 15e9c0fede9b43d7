package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// GoLeakIgnores returns the goleak options for tests in this repository.
func GoLeakIgnores() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreCurrent(),
	}
}

// VerifyTestMain runs the package's tests and fails if any test leaves a
// goroutine running once the suite has finished.
func VerifyTestMain(m *testing.M) {
	goleak.VerifyTestMain(m, GoLeakIgnores()...)
}
