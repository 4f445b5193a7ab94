package blocks_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/assert"
	"github.com/prysmaticlabs/transition-vectors/shared/testutil/require"
)

func markNeverEligible(t *testing.T, st *state.BeaconState, idx uint64) {
	val, err := st.ValidatorAtIndex(idx)
	require.NoError(t, err)
	val.ActivationEligibilityEpoch = params.BeaconConfig().FarFutureEpoch
	require.NoError(t, st.UpdateValidatorAtIndex(idx, val))
}

func TestProcessTransfers_FullBalance(t *testing.T) {
	st, privKeys := minimalGenesis(t)
	sender, recipient := uint64(numValidators-1), uint64(0)
	markNeverEligible(t, st, sender)
	amount, err := st.BalanceAtIndex(sender)
	require.NoError(t, err)
	recipientBefore, err := st.BalanceAtIndex(recipient)
	require.NoError(t, err)
	transfer, err := testutil.GenerateTransfer(st, privKeys[sender], sender, recipient, amount, st.Slot())
	require.NoError(t, err)

	newState, err := blocks.ProcessTransfers(context.Background(), st, []*ethpb.SignedTransfer{transfer}, true)
	require.NoError(t, err)
	senderAfter, err := newState.BalanceAtIndex(sender)
	require.NoError(t, err)
	recipientAfter, err := newState.BalanceAtIndex(recipient)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), senderAfter)
	assert.Equal(t, recipientBefore+amount, recipientAfter)
}

func TestProcessTransfers_Failures(t *testing.T) {
	cfg := params.BeaconConfig()
	tests := []struct {
		name   string
		setup  func(t *testing.T, st *state.BeaconState) *ethpb.Transfer
		verify bool
		kind   verification.Kind
		inv    verification.InvariantKind
	}{
		{
			name: "wrong slot",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				markNeverEligible(t, st, 1)
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: 2, Amount: cfg.MinDepositAmount, Slot: st.Slot() + 1}
			},
			kind: verification.KindStateInvariant,
			inv:  verification.TransferWrongSlot,
		},
		{
			name: "insufficient balance",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				markNeverEligible(t, st, 1)
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: 2, Amount: cfg.MaxEffectiveBalance + 1, Slot: st.Slot()}
			},
			kind: verification.KindStateInvariant,
			inv:  verification.InsufficientBalance,
		},
		{
			name: "active sender below max after transfer",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: 2, Amount: cfg.MinDepositAmount, Slot: st.Slot()}
			},
			kind: verification.KindStateInvariant,
			inv:  verification.TransferRestricted,
		},
		{
			name: "dust left with sender",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				markNeverEligible(t, st, 1)
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: 2, Amount: cfg.MaxEffectiveBalance - cfg.MinDepositAmount/2, Slot: st.Slot()}
			},
			kind: verification.KindStateInvariant,
			inv:  verification.TransferDust,
		},
		{
			name: "unknown recipient",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				markNeverEligible(t, st, 1)
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: numValidators, Amount: cfg.MinDepositAmount, Slot: st.Slot()}
			},
			kind: verification.KindStructural,
		},
		{
			name: "bad signature",
			setup: func(t *testing.T, st *state.BeaconState) *ethpb.Transfer {
				markNeverEligible(t, st, 1)
				return &ethpb.Transfer{SenderIndex: 1, RecipientIndex: 2, Amount: cfg.MinDepositAmount, Slot: st.Slot()}
			},
			verify: true,
			kind:   verification.KindSignature,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, privKeys := minimalGenesis(t)
			transfer := tt.setup(t, st)
			// Signed by the recipient, which only matters when signatures are verified.
			signed, err := testutil.GenerateTransfer(st, privKeys[2], transfer.SenderIndex, transfer.RecipientIndex, transfer.Amount, transfer.Slot)
			require.NoError(t, err)

			_, err = blocks.ProcessTransfers(context.Background(), st, []*ethpb.SignedTransfer{signed}, tt.verify)
			requireKind(t, tt.kind, err)
			if tt.inv != "" {
				requireInvariant(t, tt.inv, err)
			}
		})
	}
}

func TestProcessTransfers_TooMany(t *testing.T) {
	st, _ := minimalGenesis(t)
	transfers := make([]*ethpb.SignedTransfer, params.BeaconConfig().MaxTransfers+1)
	_, err := blocks.ProcessTransfers(context.Background(), st, transfers, false)
	requireKind(t, verification.KindStructural, err)
}
