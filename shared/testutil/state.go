package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/interop"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

type genesisKey struct {
	config        string
	numValidators uint64
}

type genesisEntry struct {
	st   *state.BeaconState
	keys []bls.SecretKey
}

var (
	lock sync.Mutex
	// Genesis states per config and validator count.
	genesisCache = make(map[genesisKey]genesisEntry)
)

// NewBeaconState creates a beacon state with minimum marshalable fields, sized by the active config.
func NewBeaconState(options ...func(state *pb.BeaconState) error) (*state.BeaconState, error) {
	cfg := params.BeaconConfig()
	seed := &pb.BeaconState{
		GenesisValidatorsRoot: make([]byte, 32),
		Fork: &ethpb.Fork{
			PreviousVersion: make([]byte, 4),
			CurrentVersion:  make([]byte, 4),
		},
		LatestBlockHeader: HydrateBeaconHeader(&ethpb.BeaconBlockHeader{}),
		BlockRoots:        filledByteSlice2D(cfg.SlotsPerHistoricalRoot, 32),
		StateRoots:        filledByteSlice2D(cfg.SlotsPerHistoricalRoot, 32),
		HistoricalRoots:   make([][]byte, 0),
		Eth1Data: &ethpb.Eth1Data{
			DepositRoot: make([]byte, 32),
			BlockHash:   make([]byte, 32),
		},
		Eth1DataVotes:               make([]*ethpb.Eth1Data, 0),
		Validators:                  make([]*ethpb.Validator, 0),
		Balances:                    make([]uint64, 0),
		RandaoMixes:                 filledByteSlice2D(cfg.EpochsPerHistoricalVector, 32),
		Slashings:                   make([]uint64, cfg.EpochsPerSlashingsVector),
		PreviousEpochAttestations:   make([]*pb.PendingAttestation, 0),
		CurrentEpochAttestations:    make([]*pb.PendingAttestation, 0),
		JustificationBits:           bitfield.Bitvector4{0x0},
		PreviousJustifiedCheckpoint: &ethpb.Checkpoint{Root: make([]byte, 32)},
		CurrentJustifiedCheckpoint:  &ethpb.Checkpoint{Root: make([]byte, 32)},
		FinalizedCheckpoint:         &ethpb.Checkpoint{Root: make([]byte, 32)},
	}

	for _, opt := range options {
		if err := opt(seed); err != nil {
			return nil, err
		}
	}

	st, err := state.InitializeFromProtoUnsafe(seed)
	if err != nil {
		return nil, err
	}
	return st.Copy(), nil
}

// DeterministicGenesisState returns a genesis state made using the deterministic deposits.
// States are cached per config and validator count; every call returns a fresh copy.
func DeterministicGenesisState(t testing.TB, numValidators uint64) (*state.BeaconState, []bls.SecretKey) {
	lock.Lock()
	defer lock.Unlock()

	key := genesisKey{config: params.BeaconConfig().ConfigName, numValidators: numValidators}
	if entry, ok := genesisCache[key]; ok {
		return entry.st.Copy(), entry.keys
	}
	st, privKeys, err := interop.GenerateGenesisState(context.Background(), 0 /*genesisTime*/, numValidators)
	if err != nil {
		t.Fatal(err)
	}
	genesisCache[key] = genesisEntry{st: st.Copy(), keys: privKeys}
	return st, privKeys
}

// ResetCache clears out the cached genesis states and keys.
func ResetCache() {
	lock.Lock()
	defer lock.Unlock()
	genesisCache = make(map[genesisKey]genesisEntry)
}

// SSZ will fill 2D byte slices with their respective values, so we must fill these in too for round
// trip testing.
func filledByteSlice2D(length, innerLen uint64) [][]byte {
	b := make([][]byte, length)
	for i := uint64(0); i < length; i++ {
		b[i] = make([]byte, innerLen)
	}
	return b
}
