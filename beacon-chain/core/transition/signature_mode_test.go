package transition

import (
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func TestSignatureMode(t *testing.T) {
	tests := []struct {
		mode    SignatureMode
		verify  bool
		setting int
		name    string
	}{
		{mode: VerifyDefault, verify: true, setting: 0, name: "default"},
		{mode: VerifyAlways, verify: true, setting: 1, name: "always"},
		{mode: VerifyNever, verify: false, setting: 2, name: "never"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.verify, tt.mode.Verify())
			assert.Equal(t, tt.setting, tt.mode.BLSSetting())
			assert.Equal(t, tt.name, tt.mode.String())
			got, err := SignatureModeFromBLSSetting(tt.setting)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, got)
		})
	}
}

func TestSignatureModeFromBLSSetting_Unknown(t *testing.T) {
	_, err := SignatureModeFromBLSSetting(3)
	assert.ErrorContains(t, "unknown bls_setting 3", err)
	assert.Equal(t, "SignatureMode(7)", SignatureMode(7).String())
}
