package usecase

import (
	"testing"

	"go.uber.org/goleak"
)

// The listing path fans out concurrent store reads; verify none of them
// outlive their call.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
