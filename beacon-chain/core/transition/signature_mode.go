package transition

import (
	"fmt"

	"github.com/pkg/errors"
)

// SignatureMode selects whether the transition checks signatures.
// Only signature checks are toggled; every other processing rule is unaffected.
type SignatureMode int

const (
	// VerifyDefault uses the standard policy, which verifies all signatures.
	VerifyDefault SignatureMode = iota
	// VerifyAlways runs every signature check.
	VerifyAlways
	// VerifyNever skips every signature check, deposit proofs of possession included.
	VerifyNever
)

// Verify reports whether signatures are checked under this mode.
func (m SignatureMode) Verify() bool {
	return m != VerifyNever
}

// BLSSetting is the integer written to vector metadata (0 default, 1 always, 2 never).
func (m SignatureMode) BLSSetting() int {
	return int(m)
}

// SignatureModeFromBLSSetting reverses BLSSetting.
func SignatureModeFromBLSSetting(setting int) (SignatureMode, error) {
	switch SignatureMode(setting) {
	case VerifyDefault, VerifyAlways, VerifyNever:
		return SignatureMode(setting), nil
	default:
		return VerifyDefault, errors.Errorf("unknown bls_setting %d", setting)
	}
}

func (m SignatureMode) String() string {
	switch m {
	case VerifyDefault:
		return "default"
	case VerifyAlways:
		return "always"
	case VerifyNever:
		return "never"
	default:
		return fmt.Sprintf("SignatureMode(%d)", int(m))
	}
}
