package sanity

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"golang.org/x/exp/slices"
)

type suite struct {
	keys []bls.SecretKey
}

// nextBlock builds the block following st, lets edit fill it in and signs it.
func (s *suite) nextBlock(st *state.BeaconState, edit func(blk *ethpb.BeaconBlock)) (*ethpb.SignedBeaconBlock, error) {
	blk, err := testutil.BuildEmptyBlockForNextSlot(st)
	if err != nil {
		return nil, err
	}
	if edit != nil {
		edit(blk.Block)
	}
	return testutil.SignBlock(st, blk, s.keys)
}

func (s *suite) key(idx uint64) (bls.SecretKey, error) {
	if idx >= uint64(len(s.keys)) {
		return nil, errors.Errorf("no private key for validator %d", idx)
	}
	return s.keys[idx], nil
}

func lastActiveIndex(st *state.BeaconState) (uint64, error) {
	indices, err := helpers.ActiveValidatorIndices(st, helpers.CurrentEpoch(st))
	if err != nil {
		return 0, err
	}
	if len(indices) == 0 {
		return 0, errors.New("no active validators")
	}
	return indices[len(indices)-1], nil
}

func balanceOf(st *state.BeaconState, idx uint64) (uint64, error) {
	return st.BalanceAtIndex(idx)
}

func checkSkippedRoots(st *state.BeaconState, from uint64, blk *ethpb.SignedBeaconBlock) error {
	for slot := from; slot < st.Slot(); slot++ {
		root, err := helpers.BlockRootAtSlot(st, slot)
		if err != nil {
			return err
		}
		if err := scenario.Assert(bytes.Equal(root, blk.Block.ParentRoot),
			"block root at slot %d is %#x, want parent root %#x", slot, root, blk.Block.ParentRoot); err != nil {
			return err
		}
	}
	return nil
}

func checkExitScheduled(st *state.BeaconState, idx uint64) error {
	val, err := st.ValidatorAtIndexReadOnly(idx)
	if err != nil {
		return err
	}
	farFuture := params.BeaconConfig().FarFutureEpoch
	if err := scenario.Assert(val.ExitEpoch() < farFuture, "validator %d has no exit epoch", idx); err != nil {
		return err
	}
	return scenario.Assert(val.WithdrawableEpoch() < farFuture, "validator %d has no withdrawable epoch", idx)
}

func checkSlashed(pre, post *state.BeaconState, idx uint64) error {
	val, err := post.ValidatorAtIndexReadOnly(idx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(val.Slashed(), "validator %d is not slashed", idx); err != nil {
		return err
	}
	if err := checkExitScheduled(post, idx); err != nil {
		return err
	}
	preBal, err := balanceOf(pre, idx)
	if err != nil {
		return err
	}
	postBal, err := balanceOf(post, idx)
	if err != nil {
		return err
	}
	return scenario.Assert(postBal < preBal, "slashed validator %d balance %d did not drop below %d", idx, postBal, preBal)
}

func (s *suite) emptyBlockTransition(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	preSlot := st.Slot()
	preVotes := len(st.Eth1DataVotes())
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, nil)
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(len(post.Eth1DataVotes()) == preVotes+1, "eth1 votes %d, want %d", len(post.Eth1DataVotes()), preVotes+1); err != nil {
		return err
	}
	root, err := helpers.BlockRootAtSlot(post, preSlot)
	if err != nil {
		return err
	}
	if err := scenario.Assert(bytes.Equal(root, blk.Block.ParentRoot), "block root at slot %d is not the parent root", preSlot); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) skippedSlots(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	preSlot := st.Slot()
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Slot += 3 })
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(post.Slot() == blk.Block.Slot, "slot %d, want %d", post.Slot(), blk.Block.Slot); err != nil {
		return err
	}
	if err := checkSkippedRoots(post, preSlot, blk); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) emptyEpochTransition(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	preSlot := st.Slot()
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Slot += params.BeaconConfig().SlotsPerEpoch })
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(post.Slot() == blk.Block.Slot, "slot %d, want %d", post.Slot(), blk.Block.Slot); err != nil {
		return err
	}
	if err := checkSkippedRoots(post, preSlot, blk); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) proposerSlashing(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	idx, err := lastActiveIndex(st)
	if err != nil {
		return err
	}
	priv, err := s.key(idx)
	if err != nil {
		return err
	}
	slashing, err := testutil.GenerateProposerSlashingForValidator(st, priv, idx)
	if err != nil {
		return err
	}
	val, err := st.ValidatorAtIndexReadOnly(idx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(!val.Slashed(), "validator %d is already slashed", idx); err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.ProposerSlashings = append(b.Body.ProposerSlashings, slashing)
	})
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := checkSlashed(st, post, idx); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) attesterSlashing(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	unsigned, err := testutil.BuildEmptyBlockForNextSlot(st)
	if err != nil {
		return err
	}
	proposer := unsigned.Block.ProposerIndex
	committee, err := helpers.BeaconCommitteeFromState(st, st.Slot(), 0 /*committeeIndex*/)
	if err != nil {
		return err
	}
	// The proposer stays out of the slashed set so that its whistleblower reward is observable.
	indices := make([]uint64, 0, len(committee))
	for _, idx := range committee {
		if idx != proposer {
			indices = append(indices, idx)
		}
	}
	if len(indices) == 0 {
		return errors.New("no attester to slash")
	}
	slices.Sort(indices)
	slashing, err := testutil.GenerateAttesterSlashingForValidators(st, s.keys, indices)
	if err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.AttesterSlashings = append(b.Body.AttesterSlashings, slashing)
	})
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := checkSlashed(st, post, indices[0]); err != nil {
		return err
	}
	proposerIdx, err := helpers.BeaconProposerIndex(post)
	if err != nil {
		return err
	}
	preBal, err := balanceOf(st, proposerIdx)
	if err != nil {
		return err
	}
	postBal, err := balanceOf(post, proposerIdx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(postBal > preBal, "proposer %d balance %d did not grow above %d", proposerIdx, postBal, preBal); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) depositInBlock(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	preLen := st.NumValidators()
	preBalancesLen := len(st.Balances())
	idx := uint64(preLen)
	amount := params.BeaconConfig().MaxEffectiveBalance
	deposit, err := testutil.PrepareStateAndDeposit(st, idx, amount, true /*signed*/)
	if err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.Deposits = append(b.Body.Deposits, deposit)
	})
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(post.NumValidators() == preLen+1, "registry length %d, want %d", post.NumValidators(), preLen+1); err != nil {
		return err
	}
	if err := scenario.Assert(len(post.Balances()) == preBalancesLen+1, "balances length %d, want %d", len(post.Balances()), preBalancesLen+1); err != nil {
		return err
	}
	bal, err := balanceOf(post, idx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(bal == amount, "new validator balance %d, want %d", bal, amount); err != nil {
		return err
	}
	pub := post.PubkeyAtIndex(idx)
	if err := scenario.Assert(bytes.Equal(pub[:], deposit.Data.PublicKey), "new validator pubkey %#x, want %#x", pub, deposit.Data.PublicKey); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) depositTopUp(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	idx := uint64(0)
	amount := params.BeaconConfig().MaxEffectiveBalance / 4
	deposit, err := testutil.PrepareStateAndDeposit(st, idx, amount, false /*signed*/)
	if err != nil {
		return err
	}
	preLen := st.NumValidators()
	preBalancesLen := len(st.Balances())
	preBal, err := balanceOf(st, idx)
	if err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.Deposits = append(b.Body.Deposits, deposit)
	})
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(post.NumValidators() == preLen, "registry length %d, want %d", post.NumValidators(), preLen); err != nil {
		return err
	}
	if err := scenario.Assert(len(post.Balances()) == preBalancesLen, "balances length %d, want %d", len(post.Balances()), preBalancesLen); err != nil {
		return err
	}
	bal, err := balanceOf(post, idx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(bal == preBal+amount, "topped up balance %d, want %d", bal, preBal+amount); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) attestation(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	cfg := params.BeaconConfig()
	st.SetSlot(cfg.SlotsPerEpoch)
	if err := e.Pre(st); err != nil {
		return err
	}
	att, err := testutil.GenerateAttestation(st, s.keys, st.Slot(), 0 /*committeeIndex*/, true /*signed*/)
	if err != nil {
		return err
	}
	preCurrent := len(st.CurrentEpochAttestations())
	attBlock, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Slot += cfg.MinAttestationInclusionDelay
		b.Body.Attestations = append(b.Body.Attestations, att)
	})
	if err != nil {
		return err
	}
	st, err = scenario.ApplyAndEmit(ctx, e, st, attBlock, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(len(st.CurrentEpochAttestations()) == preCurrent+1,
		"current epoch attestations %d, want %d", len(st.CurrentEpochAttestations()), preCurrent+1); err != nil {
		return err
	}

	preCurrentRoot, err := st.CurrentEpochAttestationsRoot()
	if err != nil {
		return err
	}
	epochBlock, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Slot += cfg.SlotsPerEpoch })
	if err != nil {
		return err
	}
	st, err = scenario.ApplyAndEmit(ctx, e, st, epochBlock, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(len(st.CurrentEpochAttestations()) == 0, "current epoch attestations were not cleared"); err != nil {
		return err
	}
	previousRoot, err := st.PreviousEpochAttestationsRoot()
	if err != nil {
		return err
	}
	if err := scenario.Assert(previousRoot == preCurrentRoot, "previous epoch attestations root %#x, want %#x", previousRoot, preCurrentRoot); err != nil {
		return err
	}
	return e.Post(st)
}

func (s *suite) voluntaryExit(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	cfg := params.BeaconConfig()
	idx, err := lastActiveIndex(st)
	if err != nil {
		return err
	}
	priv, err := s.key(idx)
	if err != nil {
		return err
	}
	// Move forward far enough for the validator to be allowed to exit.
	st.SetSlot(st.Slot() + cfg.ShardCommitteePeriod*cfg.SlotsPerEpoch)
	if err := e.Pre(st); err != nil {
		return err
	}
	exit, err := testutil.GenerateVoluntaryExit(st, priv, idx)
	if err != nil {
		return err
	}
	exitBlock, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.VoluntaryExits = append(b.Body.VoluntaryExits, exit)
	})
	if err != nil {
		return err
	}
	st, err = scenario.ApplyAndEmit(ctx, e, st, exitBlock, mode)
	if err != nil {
		return err
	}
	// Voluntary exits are scheduled by the block itself, not at the next epoch boundary.
	if err := checkExitScheduled(st, idx); err != nil {
		return err
	}

	epochBlock, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Slot += cfg.SlotsPerEpoch })
	if err != nil {
		return err
	}
	st, err = scenario.ApplyAndEmit(ctx, e, st, epochBlock, mode)
	if err != nil {
		return err
	}
	if err := checkExitScheduled(st, idx); err != nil {
		return err
	}
	return e.Post(st)
}

func (s *suite) transfer(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	sender, err := lastActiveIndex(st)
	if err != nil {
		return err
	}
	recipient := uint64(0)
	if sender == recipient {
		return errors.New("sender and recipient are the same validator")
	}
	priv, err := s.key(sender)
	if err != nil {
		return err
	}
	amount, err := balanceOf(st, sender)
	if err != nil {
		return err
	}
	preRecipient, err := balanceOf(st, recipient)
	if err != nil {
		return err
	}
	transfer, err := testutil.GenerateTransfer(st, priv, sender, recipient, amount, st.Slot()+1)
	if err != nil {
		return err
	}
	// A validator that was never eligible for activation may move its whole balance.
	val, err := st.ValidatorAtIndex(sender)
	if err != nil {
		return err
	}
	val.ActivationEligibilityEpoch = params.BeaconConfig().FarFutureEpoch
	if err := st.UpdateValidatorAtIndex(sender, val); err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) {
		b.Body.Transfers = append(b.Body.Transfers, transfer)
	})
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	senderBal, err := balanceOf(post, sender)
	if err != nil {
		return err
	}
	if err := scenario.Assert(senderBal == 0, "sender balance %d, want 0", senderBal); err != nil {
		return err
	}
	recipientBal, err := balanceOf(post, recipient)
	if err != nil {
		return err
	}
	if err := scenario.Assert(recipientBal == preRecipient+amount, "recipient balance %d, want %d", recipientBal, preRecipient+amount); err != nil {
		return err
	}
	if err := scenario.Assert(sum(post.Balances()) == sum(st.Balances()), "transfer changed the total balance"); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) balanceDrivenStatusTransitions(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	idx, err := lastActiveIndex(st)
	if err != nil {
		return err
	}
	val, err := st.ValidatorAtIndex(idx)
	if err != nil {
		return err
	}
	if err := scenario.Assert(val.ExitEpoch == params.BeaconConfig().FarFutureEpoch, "validator %d already exiting", idx); err != nil {
		return err
	}
	val.EffectiveBalance = params.BeaconConfig().EjectionBalance
	if err := st.UpdateValidatorAtIndex(idx, val); err != nil {
		return err
	}
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Slot += params.BeaconConfig().SlotsPerEpoch })
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := checkExitScheduled(post, idx); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) historicalBatch(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	cfg := params.BeaconConfig()
	st.SetSlot(st.Slot() + cfg.SlotsPerHistoricalRoot - (st.Slot() % cfg.SlotsPerHistoricalRoot) - 1)
	preLen := len(st.HistoricalRoots())
	if err := e.Pre(st); err != nil {
		return err
	}
	blk, err := s.nextBlock(st, nil)
	if err != nil {
		return err
	}
	post, err := scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(post.Slot() == blk.Block.Slot, "slot %d, want %d", post.Slot(), blk.Block.Slot); err != nil {
		return err
	}
	epochsPerBatch := cfg.SlotsPerHistoricalRoot / cfg.SlotsPerEpoch
	if err := scenario.Assert(helpers.CurrentEpoch(post)%epochsPerBatch == 0, "epoch %d is not a batch boundary", helpers.CurrentEpoch(post)); err != nil {
		return err
	}
	if err := scenario.Assert(len(post.HistoricalRoots()) == preLen+1, "historical roots %d, want %d", len(post.HistoricalRoots()), preLen+1); err != nil {
		return err
	}
	return e.Post(post)
}

func (s *suite) eth1DataVotesConsensus(ctx context.Context, e scenario.Emitter, st *state.BeaconState, mode transition.SignatureMode) error {
	period := params.BeaconConfig().SlotsPerEth1VotingPeriod()
	if err := scenario.Assert(st.Slot()%period == 0, "slot %d does not start a voting period", st.Slot()); err != nil {
		return err
	}
	if err := scenario.Assert(len(st.Eth1DataVotes()) == 0, "voting period starts with %d votes", len(st.Eth1DataVotes())); err != nil {
		return err
	}
	vote := ethpb.CopyEth1Data(st.Eth1Data())
	vote.BlockHash = bytesutil.PadTo([]byte("eth1 consensus vote"), 32)
	if err := e.Pre(st); err != nil {
		return err
	}
	for i := uint64(1); i < period; i++ {
		blk, err := s.nextBlock(st, func(b *ethpb.BeaconBlock) { b.Body.Eth1Data = ethpb.CopyEth1Data(vote) })
		if err != nil {
			return err
		}
		st, err = scenario.ApplyAndEmit(ctx, e, st, blk, mode)
		if err != nil {
			return err
		}
		if err := scenario.Assert(uint64(len(st.Eth1DataVotes())) == i, "eth1 votes %d, want %d", len(st.Eth1DataVotes()), i); err != nil {
			return err
		}
		adopted := bytes.Equal(st.Eth1Data().BlockHash, vote.BlockHash)
		if err := scenario.Assert(adopted == (i*2 > period), "eth1 data adoption after %d of %d votes: %v", i, period, adopted); err != nil {
			return err
		}
	}
	blk, err := s.nextBlock(st, nil)
	if err != nil {
		return err
	}
	st, err = scenario.ApplyAndEmit(ctx, e, st, blk, mode)
	if err != nil {
		return err
	}
	if err := scenario.Assert(st.Slot()%period == 0, "slot %d does not start a voting period", st.Slot()); err != nil {
		return err
	}
	if err := scenario.Assert(len(st.Eth1DataVotes()) == 1, "eth1 votes %d after period reset, want 1", len(st.Eth1DataVotes())); err != nil {
		return err
	}
	return e.Post(st)
}

func sum(balances []uint64) uint64 {
	total := uint64(0)
	for _, b := range balances {
		total += b
	}
	return total
}
