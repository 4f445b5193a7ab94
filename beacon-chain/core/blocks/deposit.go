package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bytesutil"
	"github.com/prysmaticlabs/transition-vectors/shared/depositutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/trieutil"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ExpectedDepositCount returns how many deposits a block at this state must carry.
//
//  len(body.deposits) == min(MAX_DEPOSITS, state.eth1_data.deposit_count - state.eth1_deposit_index)
func ExpectedDepositCount(st *state.BeaconState) (uint64, error) {
	eth1Data := st.Eth1Data()
	if eth1Data == nil {
		return 0, errors.New("nil eth1 data in state")
	}
	index := st.Eth1DepositIndex()
	if eth1Data.DepositCount < index {
		return 0, errors.Errorf("deposit index %d is beyond eth1 deposit count %d", index, eth1Data.DepositCount)
	}
	pending := eth1Data.DepositCount - index
	if pending > params.BeaconConfig().MaxDeposits {
		return params.BeaconConfig().MaxDeposits, nil
	}
	return pending, nil
}

// ProcessDeposits is one of the operations performed on each processed
// beacon block to verify queued validators from the Ethereum 1.0 Deposit Contract
// into the beacon chain.
//
// Pseudocode definition:
//   For each deposit in block.body.deposits:
//     process_deposit(state, deposit)
func ProcessDeposits(
	ctx context.Context,
	st *state.BeaconState,
	deposits []*ethpb.Deposit,
	verifySignatures bool,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.blocks.ProcessDeposits")
	defer span.End()

	expected, err := ExpectedDepositCount(st)
	if err != nil {
		return nil, verification.Structuralf("%v", err)
	}
	if uint64(len(deposits)) != expected {
		return nil, verification.Structuralf("incorrect outstanding deposits in block body, wanted: %d, got: %d",
			expected, len(deposits))
	}
	for idx, deposit := range deposits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if deposit == nil || deposit.Data == nil {
			return nil, verification.Structuralf("got a nil deposit in block")
		}
		st, err = ProcessDeposit(st, deposit, verifySignatures)
		if err != nil {
			return nil, errors.Wrapf(err, "could not process deposit %d from %#x", idx, bytesutil.Trunc(deposit.Data.PublicKey))
		}
	}
	return st, nil
}

// ProcessDeposit takes in a deposit object and inserts it
// into the registry as a new validator or balance change.
//
// Pseudocode definition:
// def process_deposit(state: BeaconState, deposit: Deposit) -> None:
//    # Verify the Merkle branch
//    assert is_valid_merkle_branch(
//        leaf=hash_tree_root(deposit.data),
//        branch=deposit.proof,
//        depth=DEPOSIT_CONTRACT_TREE_DEPTH + 1,  # Add 1 for the List length mix-in
//        index=state.eth1_deposit_index,
//        root=state.eth1_data.deposit_root,
//    )
//
//    # Deposits must be processed in order
//    state.eth1_deposit_index += 1
//
//    pubkey = deposit.data.pubkey
//    amount = deposit.data.amount
//    validator_pubkeys = [v.pubkey for v in state.validators]
//    if pubkey not in validator_pubkeys:
//        # Verify the deposit signature (proof of possession) which is not checked by the deposit contract
//        deposit_message = DepositMessage(
//            pubkey=deposit.data.pubkey,
//            withdrawal_credentials=deposit.data.withdrawal_credentials,
//            amount=deposit.data.amount,
//        )
//        domain = compute_domain(DOMAIN_DEPOSIT)  # Fork-agnostic domain since deposits are valid across forks
//        signing_root = compute_signing_root(deposit_message, domain)
//        if not bls.Verify(pubkey, signing_root, deposit.data.signature):
//            return
//
//        # Add validator and balance entries
//        state.validators.append(get_validator_from_deposit(state, deposit))
//        state.balances.append(amount)
//    else:
//        # Increase balance by deposit amount
//        index = ValidatorIndex(validator_pubkeys.index(pubkey))
//        increase_balance(state, index, amount)
func ProcessDeposit(st *state.BeaconState, deposit *ethpb.Deposit, verifySignature bool) (*state.BeaconState, error) {
	if err := verifyDeposit(st, deposit); err != nil {
		return nil, err
	}
	st.SetEth1DepositIndex(st.Eth1DepositIndex() + 1)

	pubKey := deposit.Data.PublicKey
	amount := deposit.Data.Amount
	index, ok, err := validatorIndexByPubkey(st, pubKey)
	if err != nil {
		return nil, err
	}
	if ok {
		log.WithFields(logrus.Fields{
			"validatorIndex": index,
			"amount":         amount,
		}).Debug("Topped up validator balance")
		if err := helpers.IncreaseBalance(st, index, amount); err != nil {
			return nil, err
		}
		return st, nil
	}

	if verifySignature {
		if err := depositutil.VerifyDepositSignature(deposit.Data); err != nil {
			log.WithError(err).WithField("pubkey", bytesutil.Trunc(pubKey)).Debug("Skipping deposit with invalid signature")
			return st, nil
		}
	}
	effectiveBalance := amount - (amount % params.BeaconConfig().EffectiveBalanceIncrement)
	if params.BeaconConfig().MaxEffectiveBalance < effectiveBalance {
		effectiveBalance = params.BeaconConfig().MaxEffectiveBalance
	}
	st.AppendValidator(&ethpb.Validator{
		PublicKey:                  bytesutil.SafeCopyBytes(pubKey),
		WithdrawalCredentials:      bytesutil.SafeCopyBytes(deposit.Data.WithdrawalCredentials),
		ActivationEligibilityEpoch: params.BeaconConfig().FarFutureEpoch,
		ActivationEpoch:            params.BeaconConfig().FarFutureEpoch,
		ExitEpoch:                  params.BeaconConfig().FarFutureEpoch,
		WithdrawableEpoch:          params.BeaconConfig().FarFutureEpoch,
		EffectiveBalance:           effectiveBalance,
	})
	st.AppendBalance(amount)
	log.WithFields(logrus.Fields{
		"validatorIndex": st.NumValidators() - 1,
		"amount":         amount,
	}).Debug("Added validator from deposit")
	return st, nil
}

func validatorIndexByPubkey(st *state.BeaconState, pubKey []byte) (uint64, bool, error) {
	var (
		index uint64
		found bool
	)
	key := bytesutil.ToBytes48(pubKey)
	err := st.ReadFromEveryValidator(func(idx int, val *state.ReadOnlyValidator) error {
		if !found && val.PublicKey() == key {
			index = uint64(idx)
			found = true
		}
		return nil
	})
	return index, found, err
}

func verifyDeposit(st *state.BeaconState, deposit *ethpb.Deposit) error {
	// Verify Merkle proof of deposit and deposit trie root.
	if deposit == nil || deposit.Data == nil {
		return verification.Structuralf("received nil deposit or nil deposit data")
	}
	eth1Data := st.Eth1Data()
	if eth1Data == nil {
		return errors.New("received nil eth1data in the beacon state")
	}
	leaf, err := deposit.Data.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not tree hash deposit data")
	}
	if ok := trieutil.VerifyMerkleProofWithDepth(
		eth1Data.DepositRoot,
		leaf[:],
		st.Eth1DepositIndex(),
		deposit.Proof,
		params.BeaconConfig().DepositContractTreeDepth,
	); !ok {
		return verification.Invariantf(verification.InvalidDepositProof,
			"deposit merkle branch of deposit root did not verify for root: %#x", eth1Data.DepositRoot)
	}
	return nil
}
