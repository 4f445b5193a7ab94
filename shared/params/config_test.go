package params

import (
	"strings"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"gopkg.in/yaml.v2"
)

func yamlUnmarshal(parts []string, out interface{}) error {
	return yaml.Unmarshal([]byte(strings.Join(parts, "\n")), out)
}

func TestOverrideBeaconConfig(t *testing.T) {
	SetupTestConfigCleanup(t)
	cfg := BeaconConfig().Copy()
	cfg.SlotsPerEpoch = 5
	OverrideBeaconConfig(cfg)
	assert.Equal(t, uint64(5), BeaconConfig().SlotsPerEpoch)
}

func TestCopy_DoesNotShareForkVersion(t *testing.T) {
	cfg := MainnetConfig().Copy()
	cfg.GenesisForkVersion[3] = 0xff
	assert.Equal(t, byte(0), MainnetConfig().GenesisForkVersion[3])
}

func TestMinimalSpecConfig_LeavesMainnetUntouched(t *testing.T) {
	SetupTestConfigCleanup(t)
	UseMinimalConfig()
	assert.Equal(t, uint64(8), BeaconConfig().SlotsPerEpoch)
	assert.Equal(t, uint64(32), MainnetConfig().SlotsPerEpoch)
	assert.Equal(t, uint64(32), BeaconConfig().SlotsPerEth1VotingPeriod())
	assert.Equal(t, uint64(1024), BeaconConfig().PendingAttestationsLimit())
	UseMainnetConfig()
	assert.Equal(t, "mainnet", BeaconConfig().ConfigName)
}

func TestConfigPowersOfTwo(t *testing.T) {
	for _, cfg := range []*BeaconChainConfig{MainnetConfig(), MinimalSpecConfig()} {
		for name, v := range map[string]uint64{
			"SlotsPerHistoricalRoot":    cfg.SlotsPerHistoricalRoot,
			"EpochsPerHistoricalVector": cfg.EpochsPerHistoricalVector,
			"EpochsPerSlashingsVector":  cfg.EpochsPerSlashingsVector,
		} {
			assert.Equal(t, uint64(0), v&(v-1), "%s %s is not a power of two", cfg.ConfigName, name)
		}
	}
}
