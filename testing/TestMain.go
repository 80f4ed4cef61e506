// Package testing puts the application into test mode for packages that
// blank-import it, so tests never trigger runtime side effects.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		if os.Getenv("STUDYHALL_TEST_MODE") == "" {
			_ = os.Setenv("STUDYHALL_TEST_MODE", "1")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
