package blocks

import (
	"bytes"
	"context"

	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/sirupsen/logrus"
)

// ProcessEth1DataInBlock is an operation performed on each
// beacon block to ensure the ETH1 data votes are processed
// into the beacon state.
//
// Pseudocode definition:
//  def process_eth1_data(state: BeaconState, body: BeaconBlockBody) -> None:
//    state.eth1_data_votes.append(body.eth1_data)
//    if state.eth1_data_votes.count(body.eth1_data) * 2 > EPOCHS_PER_ETH1_VOTING_PERIOD * SLOTS_PER_EPOCH:
//        state.eth1_data = body.eth1_data
func ProcessEth1DataInBlock(_ context.Context, st *state.BeaconState, body *ethpb.BeaconBlockBody) (*state.BeaconState, error) {
	if body == nil || body.Eth1Data == nil {
		return nil, verification.Structuralf("nil eth1 data in block body")
	}
	st.AppendEth1DataVotes(body.Eth1Data)
	if Eth1DataHasEnoughSupport(st, body.Eth1Data) {
		log.WithFields(logrus.Fields{
			"depositRoot":  body.Eth1Data.DepositRoot,
			"depositCount": body.Eth1Data.DepositCount,
		}).Debug("Adopted eth1 data vote")
		st.SetEth1Data(ethpb.CopyEth1Data(body.Eth1Data))
	}
	return st, nil
}

// AreEth1DataEqual checks equality between two eth1 data objects.
func AreEth1DataEqual(a, b *ethpb.Eth1Data) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.DepositCount == b.DepositCount &&
		bytes.Equal(a.DepositRoot, b.DepositRoot) &&
		bytes.Equal(a.BlockHash, b.BlockHash)
}

// Eth1DataHasEnoughSupport returns true when the given eth1data has more than 50% votes in the
// eth1 voting period. A vote is cast by including eth1data in a block and part of state processing
// appends eth1data to the state in the Eth1DataVotes list. Iterating through this list checks the
// votes to see if they match the eth1data.
func Eth1DataHasEnoughSupport(st *state.BeaconState, data *ethpb.Eth1Data) bool {
	voteCount := uint64(0)
	for _, vote := range st.Eth1DataVotes() {
		if AreEth1DataEqual(vote, data) {
			voteCount++
		}
	}
	// If 50+% majority converged on the same eth1data, then it has enough support to update the
	// state.
	support := params.BeaconConfig().SlotsPerEth1VotingPeriod()
	return voteCount*2 > support
}
