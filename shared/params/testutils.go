package params

import (
	"testing"
)

// SetupTestConfigCleanup preserves configurations allowing to modify them within tests without any
// restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t testing.TB) {
	prevBeaconConfig := beaconConfig.Copy()
	t.Cleanup(func() {
		beaconConfig = prevBeaconConfig
	})
}
