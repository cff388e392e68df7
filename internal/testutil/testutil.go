// Package testutil provides shared helpers for the lesson test suites.
//
// Helpers that gate a single external service live next to the lessons that
// need them; only the generic ones belong here.
package testutil

import (
	"os"
	"testing"
)

// SkipIfShort skips long-running tests when the -short flag is used.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}

// SkipUnlessSet skips the test unless the environment variable is set,
// and returns its value otherwise. Lessons that need a real endpoint use
// this so a plain `go test ./...` stays green on a laptop with nothing
// running.
func SkipUnlessSet(t *testing.T, key string) string {
	t.Helper()
	v := os.Getenv(key)
	if v == "" {
		t.Skipf("skipping: %s not set", key)
	}
	return v
}

// SkipIfNoDocker skips tests that start containers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("DOCKER_AVAILABLE") != "true" {
		t.Skip("skipping test: Docker not available (set DOCKER_AVAILABLE=true)")
	}
}

// FailureDemosEnabled reports whether the deliberately-failing lesson tests
// should run. They exist to show what a failure report looks like, so they
// are opt-in; see calc's failure demo.
func FailureDemosEnabled() bool {
	return os.Getenv("GOTESTBOOK_SHOW_FAILURES") == "1"
}
