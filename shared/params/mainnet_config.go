package params

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

// UseMainnetConfig for beacon chain services.
func UseMainnetConfig() {
	beaconConfig = MainnetConfig()
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (Non-configurable)
	FarFutureEpoch:           1<<64 - 1,
	GenesisEpoch:             0,
	GenesisSlot:              0,
	DepositContractTreeDepth: 32,
	JustificationBitsLength:  4,

	// Misc constant.
	ConfigName:                     "mainnet",
	TargetCommitteeSize:            128,
	MaxValidatorsPerCommittee:      2048,
	MaxCommitteesPerSlot:           64,
	MinPerEpochChurnLimit:          4,
	ChurnLimitQuotient:             1 << 16,
	ShuffleRoundCount:              90,
	MinGenesisActiveValidatorCount: 16384,
	HysteresisQuotient:             4,
	HysteresisDownwardMultiplier:   1,
	HysteresisUpwardMultiplier:     5,

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EjectionBalance:           16 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Initial value constants.
	BLSWithdrawalPrefixByte: byte(0),
	ZeroHash:                [32]byte{},

	// Time parameter constants.
	MinAttestationInclusionDelay:     1,
	SecondsPerSlot:                   12,
	SlotsPerEpoch:                    32,
	MinSeedLookahead:                 1,
	MaxSeedLookahead:                 4,
	EpochsPerEth1VotingPeriod:        64,
	SlotsPerHistoricalRoot:           8192,
	MinValidatorWithdrawabilityDelay: 256,
	ShardCommitteePeriod:             256,

	// State list length constants.
	EpochsPerHistoricalVector: 65536,
	EpochsPerSlashingsVector:  8192,
	HistoricalRootsLimit:      16777216,
	ValidatorRegistryLimit:    1099511627776,

	// Reward and penalty quotients constants.
	WhistleBlowerRewardQuotient:    512,
	ProposerRewardQuotient:         8,
	MinSlashingPenaltyQuotient:     128,
	ProportionalSlashingMultiplier: 1,

	// Max operations per block constants.
	MaxProposerSlashings: 16,
	MaxAttesterSlashings: 2,
	MaxAttestations:      128,
	MaxDeposits:          16,
	MaxVoluntaryExits:    16,
	MaxTransfers:         16,

	// BLS domain values.
	DomainBeaconProposer: [4]byte{0, 0, 0, 0},
	DomainBeaconAttester: [4]byte{1, 0, 0, 0},
	DomainRandao:         [4]byte{2, 0, 0, 0},
	DomainDeposit:        [4]byte{3, 0, 0, 0},
	DomainVoluntaryExit:  [4]byte{4, 0, 0, 0},
	DomainTransfer:       [4]byte{5, 0, 0, 0},

	// Fork related values.
	GenesisForkVersion: []byte{0, 0, 0, 0},

	// Local constants.
	BLSSecretKeyLength:  32,
	BLSPubkeyLength:     48,
	BLSSignatureLength:  96,
	RootLength:          32,
	DefaultValidatorCnt: 256,
}
