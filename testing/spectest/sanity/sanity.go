// Package sanity holds the phase0 sanity block scenarios. Each scenario builds blocks
// against a genesis state, applies them through the state transition and checks the
// resulting state before emitting it.
package sanity

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/interop"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"golang.org/x/exp/slices"
)

// DefaultValidatorCount is the genesis registry size of the active config, eight
// validators per slot of an epoch.
func DefaultValidatorCount() uint64 {
	return params.BeaconConfig().SlotsPerEpoch * 8
}

// GenesisState builds the deterministic genesis state the scenarios run against,
// together with the keys of its validators.
func GenesisState(ctx context.Context, numValidators uint64) (*state.BeaconState, []bls.SecretKey, error) {
	st, keys, err := interop.GenerateGenesisState(ctx, 0 /*genesisTime*/, numValidators)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not generate genesis state")
	}
	return st, keys, nil
}

// Scenarios lists every sanity scenario in a stable order. privKeys must hold the key of
// every genesis validator.
func Scenarios(privKeys []bls.SecretKey) []scenario.Descriptor {
	s := &suite{keys: privKeys}
	return []scenario.Descriptor{
		{Name: "empty_block_transition", BLS: transition.VerifyNever, Body: s.emptyBlockTransition},
		{Name: "skipped_slots", BLS: transition.VerifyNever, Body: s.skippedSlots},
		{Name: "empty_epoch_transition", Body: s.emptyEpochTransition},
		{Name: "proposer_slashing", Body: s.proposerSlashing},
		{Name: "attester_slashing", Body: s.attesterSlashing},
		{Name: "deposit_in_block", Body: s.depositInBlock},
		{Name: "deposit_top_up", Body: s.depositTopUp},
		{Name: "attestation", BLS: transition.VerifyAlways, Body: s.attestation},
		{Name: "voluntary_exit", Body: s.voluntaryExit},
		{Name: "transfer", Body: s.transfer},
		{Name: "balance_driven_status_transitions", Body: s.balanceDrivenStatusTransitions},
		{Name: "historical_batch", Body: s.historicalBatch},
		{Name: "eth1_data_votes_consensus", Body: s.eth1DataVotesConsensus},
	}
}

// Select returns the descriptors named in names, in the order of all. An empty filter
// selects everything.
func Select(all []scenario.Descriptor, names []string) ([]scenario.Descriptor, error) {
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	selected := make([]scenario.Descriptor, 0, len(names))
	for _, d := range all {
		if want[d.Name] {
			selected = append(selected, d)
			delete(want, d.Name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		slices.Sort(unknown)
		return nil, errors.Errorf("unknown scenarios: %v", unknown)
	}
	return selected, nil
}
