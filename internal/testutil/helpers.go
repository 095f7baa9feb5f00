package testutil

import (
	"os"
	"testing"
)

// RequireSystem skips the test unless the NFTJCTL_SYSTEM_TEST environment
// variable is set. Tests that invoke the real nft binary need root and a
// kernel with nftables; they only run in the proper environment.
func RequireSystem(t *testing.T) {
	t.Helper()
	if os.Getenv("NFTJCTL_SYSTEM_TEST") == "" {
		t.Skip("Skipping test: requires NFTJCTL_SYSTEM_TEST environment")
	}
}
