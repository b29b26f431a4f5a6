package pipeline_test

import (
	"testing"

	"go.uber.org/goleak"
)

// A render is synchronous; nothing may outlive Run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
