package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessTransfers moves balances between validators for every transfer in the block body.
//
// Pseudocode definition:
//  def process_transfer(state: BeaconState, signed_transfer: SignedTransfer) -> None:
//    transfer = signed_transfer.message
//    # Verify the balance covers the amount
//    assert state.balances[transfer.sender] >= transfer.amount
//    # A transfer is valid in only one slot
//    assert state.slot == transfer.slot
//    # Sender must satisfy at least one of the following:
//    assert (
//        # 1) Never have been eligible for activation
//        state.validators[transfer.sender].activation_eligibility_epoch == FAR_FUTURE_EPOCH or
//        # 2) Be withdrawable
//        get_current_epoch(state) >= state.validators[transfer.sender].withdrawable_epoch or
//        # 3) Have a balance of at least MAX_EFFECTIVE_BALANCE after the transfer
//        state.balances[transfer.sender] >= transfer.amount + MAX_EFFECTIVE_BALANCE
//    )
//    # Verify that the signature is valid
//    domain = get_domain(state, DOMAIN_TRANSFER)
//    assert bls.Verify(state.validators[transfer.sender].pubkey, compute_signing_root(transfer, domain), signed_transfer.signature)
//    # Process the transfer
//    decrease_balance(state, transfer.sender, transfer.amount)
//    increase_balance(state, transfer.recipient, transfer.amount)
//    # Verify balances are not dust
//    assert not (0 < state.balances[transfer.sender] < MIN_DEPOSIT_AMOUNT)
//    assert not (0 < state.balances[transfer.recipient] < MIN_DEPOSIT_AMOUNT)
func ProcessTransfers(
	ctx context.Context,
	st *state.BeaconState,
	transfers []*ethpb.SignedTransfer,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessTransfers")
	defer span.End()

	if uint64(len(transfers)) > params.BeaconConfig().MaxTransfers {
		return nil, verification.Structuralf("number of transfers (%d) exceeds allowed threshold of %d",
			len(transfers), params.BeaconConfig().MaxTransfers)
	}
	var err error
	for idx, transfer := range transfers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err = ProcessTransfer(st, transfer, verifySignatures)
		if err != nil {
			return nil, errors.Wrapf(err, "could not process transfer %d", idx)
		}
	}
	return st, nil
}

// ProcessTransfer applies a single signed transfer.
func ProcessTransfer(st *state.BeaconState, signed *ethpb.SignedTransfer, verifySignature bool) (*state.BeaconState, error) {
	if err := VerifyTransfer(st, signed, verifySignature); err != nil {
		return nil, err
	}
	transfer := signed.Transfer
	if err := helpers.DecreaseBalance(st, transfer.SenderIndex, transfer.Amount); err != nil {
		return nil, err
	}
	if err := helpers.IncreaseBalance(st, transfer.RecipientIndex, transfer.Amount); err != nil {
		return nil, err
	}
	minDeposit := params.BeaconConfig().MinDepositAmount
	for _, idx := range []uint64{transfer.SenderIndex, transfer.RecipientIndex} {
		bal, err := st.BalanceAtIndex(idx)
		if err != nil {
			return nil, err
		}
		if bal > 0 && bal < minDeposit {
			return nil, verification.Invariantf(verification.TransferDust,
				"balance %d of validator %d is below minimum deposit amount %d", bal, idx, minDeposit)
		}
	}
	log.WithFields(logrus.Fields{
		"sender":    transfer.SenderIndex,
		"recipient": transfer.RecipientIndex,
		"amount":    transfer.Amount,
	}).Debug("Processed transfer")
	return st, nil
}

// VerifyTransfer checks the preconditions of a transfer that do not depend on its effect.
func VerifyTransfer(st *state.BeaconState, signed *ethpb.SignedTransfer, verifySignature bool) error {
	if signed == nil || signed.Transfer == nil {
		return verification.Structuralf("nil transfer in block body")
	}
	transfer := signed.Transfer
	sender, err := st.ValidatorAtIndexReadOnly(transfer.SenderIndex)
	if err != nil {
		return verification.Structuralf("unknown transfer sender index %d", transfer.SenderIndex)
	}
	if transfer.RecipientIndex >= uint64(st.NumValidators()) {
		return verification.Structuralf("unknown transfer recipient index %d", transfer.RecipientIndex)
	}
	if st.Slot() != transfer.Slot {
		return verification.Invariantf(verification.TransferWrongSlot, "transfer slot %d is not state slot %d", transfer.Slot, st.Slot())
	}
	balance, err := st.BalanceAtIndex(transfer.SenderIndex)
	if err != nil {
		return err
	}
	if balance < transfer.Amount {
		return verification.Invariantf(verification.InsufficientBalance, "sender balance %d is below transfer amount %d", balance, transfer.Amount)
	}
	cfg := params.BeaconConfig()
	neverEligible := sender.ActivationEligibilityEpoch() == cfg.FarFutureEpoch
	withdrawable := helpers.CurrentEpoch(st) >= sender.WithdrawableEpoch()
	keepsMaxBalance := balance >= transfer.Amount+cfg.MaxEffectiveBalance
	if !neverEligible && !withdrawable && !keepsMaxBalance {
		return verification.Invariantf(verification.TransferRestricted, "validator %d may not transfer %d", transfer.SenderIndex, transfer.Amount)
	}
	if !verifySignature {
		return nil
	}
	pub := sender.PublicKey()
	return verifySigningRoot(st, "transfer", transfer, pub[:], signed.Signature, cfg.DomainTransfer, helpers.CurrentEpoch(st))
}
