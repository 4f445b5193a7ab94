package transition

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	b "github.com/prysmaticlabs/transition-vectors/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	pb "github.com/prysmaticlabs/transition-vectors/proto/beacon/p2p/v1"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

// GenesisBeaconState gets called when the deposit contract has enough validator deposits
// to start the chain. Every deposit proof is checked against eth1Data, and validators
// reaching MAX_EFFECTIVE_BALANCE are activated at the genesis epoch.
//
// Pseudocode definition:
//  def initialize_beacon_state_from_eth1(eth1_block_hash: Bytes32,
//                                      eth1_timestamp: uint64,
//                                      deposits: Sequence[Deposit]) -> BeaconState:
//    state = BeaconState(
//        genesis_time=eth1_timestamp - eth1_timestamp % SECONDS_PER_DAY + 2 * SECONDS_PER_DAY,
//        eth1_data=Eth1Data(block_hash=eth1_block_hash, deposit_count=len(deposits)),
//        latest_block_header=BeaconBlockHeader(body_root=hash_tree_root(BeaconBlockBody())),
//        randao_mixes=[eth1_block_hash] * EPOCHS_PER_HISTORICAL_VECTOR,  # Seed RANDAO with Eth1 entropy
//    )
//
//    # Process deposits
//    for deposit in deposits:
//        process_deposit(state, deposit)
//
//    # Process activations
//    for index, validator in enumerate(state.validators):
//        balance = state.balances[index]
//        validator.effective_balance = min(balance - balance % EFFECTIVE_BALANCE_INCREMENT, MAX_EFFECTIVE_BALANCE)
//        if validator.effective_balance == MAX_EFFECTIVE_BALANCE:
//            validator.activation_eligibility_epoch = GENESIS_EPOCH
//            validator.activation_epoch = GENESIS_EPOCH
//
//    return state
func GenesisBeaconState(ctx context.Context, deposits []*ethpb.Deposit, genesisTime uint64, eth1Data *ethpb.Eth1Data) (*state.BeaconState, error) {
	if eth1Data == nil {
		return nil, errors.New("no eth1data provided for genesis state")
	}
	cfg := params.BeaconConfig()

	emptyBody := &ethpb.BeaconBlockBody{
		RandaoReveal: make([]byte, cfg.BLSSignatureLength),
		Eth1Data: &ethpb.Eth1Data{
			DepositRoot: make([]byte, 32),
			BlockHash:   make([]byte, 32),
		},
		Graffiti: make([]byte, 32),
	}
	bodyRoot, err := emptyBody.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash tree root empty block body")
	}

	randaoMixes := make([][]byte, cfg.EpochsPerHistoricalVector)
	for i := range randaoMixes {
		randaoMixes[i] = bytesutil.PadTo(bytesutil.SafeCopyBytes(eth1Data.BlockHash), 32)
	}

	st, err := state.InitializeFromProtoUnsafe(&pb.BeaconState{
		GenesisTime:           genesisTime,
		GenesisValidatorsRoot: make([]byte, 32),
		Fork: &ethpb.Fork{
			PreviousVersion: bytesutil.SafeCopyBytes(cfg.GenesisForkVersion),
			CurrentVersion:  bytesutil.SafeCopyBytes(cfg.GenesisForkVersion),
			Epoch:           cfg.GenesisEpoch,
		},
		LatestBlockHeader: &ethpb.BeaconBlockHeader{
			ParentRoot: make([]byte, 32),
			StateRoot:  make([]byte, 32),
			BodyRoot:   bodyRoot[:],
		},
		BlockRoots:      zeroRoots(cfg.SlotsPerHistoricalRoot),
		StateRoots:      zeroRoots(cfg.SlotsPerHistoricalRoot),
		HistoricalRoots: [][]byte{},
		Eth1Data: &ethpb.Eth1Data{
			DepositRoot:  bytesutil.SafeCopyBytes(eth1Data.DepositRoot),
			DepositCount: eth1Data.DepositCount,
			BlockHash:    bytesutil.SafeCopyBytes(eth1Data.BlockHash),
		},
		Eth1DataVotes:               []*ethpb.Eth1Data{},
		Validators:                  []*ethpb.Validator{},
		Balances:                    []uint64{},
		RandaoMixes:                 randaoMixes,
		Slashings:                   make([]uint64, cfg.EpochsPerSlashingsVector),
		PreviousEpochAttestations:   []*pb.PendingAttestation{},
		CurrentEpochAttestations:    []*pb.PendingAttestation{},
		JustificationBits:           bitfield.Bitvector4{0},
		PreviousJustifiedCheckpoint: &ethpb.Checkpoint{Root: make([]byte, 32)},
		CurrentJustifiedCheckpoint:  &ethpb.Checkpoint{Root: make([]byte, 32)},
		FinalizedCheckpoint:         &ethpb.Checkpoint{Root: make([]byte, 32)},
	})
	if err != nil {
		return nil, err
	}

	for i, deposit := range deposits {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		st, err = b.ProcessDeposit(st, deposit, true /* verifySignature */)
		if err != nil {
			return nil, errors.Wrapf(err, "could not process genesis deposit %d", i)
		}
	}

	bals := st.Balances()
	for idx, val := range st.Validators() {
		balance := bals[idx]
		effective := balance - balance%cfg.EffectiveBalanceIncrement
		if effective > cfg.MaxEffectiveBalance {
			effective = cfg.MaxEffectiveBalance
		}
		val.EffectiveBalance = effective
		if effective == cfg.MaxEffectiveBalance {
			val.ActivationEligibilityEpoch = cfg.GenesisEpoch
			val.ActivationEpoch = cfg.GenesisEpoch
		}
		if err := st.UpdateValidatorAtIndex(uint64(idx), val); err != nil {
			return nil, err
		}
	}

	genesisValidatorsRoot, err := st.ValidatorRegistryRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash tree root genesis validators")
	}
	st.SetGenesisValidatorRoot(genesisValidatorsRoot[:])
	log.WithField("validators", st.NumValidators()).Debug("Built genesis state")
	return st, nil
}

func zeroRoots(n uint64) [][]byte {
	roots := make([][]byte, n)
	for i := range roots {
		roots[i] = make([]byte, 32)
	}
	return roots
}
