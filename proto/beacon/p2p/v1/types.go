// Package ethereum_beacon_p2p_v1 defines the beacon state container and the records
// kept inside it, with hand-written SSZ codecs sized by the active chain config.
package ethereum_beacon_p2p_v1

import (
	"github.com/prysmaticlabs/go-bitfield"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
)

// BeaconState is the full consensus state a block is applied to.
type BeaconState struct {
	GenesisTime                 uint64
	GenesisValidatorsRoot       []byte `ssz-size:"32"`
	Slot                        uint64
	Fork                        *ethpb.Fork
	LatestBlockHeader           *ethpb.BeaconBlockHeader
	BlockRoots                  [][]byte `ssz-size:"8192,32"`
	StateRoots                  [][]byte `ssz-size:"8192,32"`
	HistoricalRoots             [][]byte `ssz-max:"16777216" ssz-size:"?,32"`
	Eth1Data                    *ethpb.Eth1Data
	Eth1DataVotes               []*ethpb.Eth1Data `ssz-max:"2048"`
	Eth1DepositIndex            uint64
	Validators                  []*ethpb.Validator    `ssz-max:"1099511627776"`
	Balances                    []uint64              `ssz-max:"1099511627776"`
	RandaoMixes                 [][]byte              `ssz-size:"65536,32"`
	Slashings                   []uint64              `ssz-size:"8192"`
	PreviousEpochAttestations   []*PendingAttestation `ssz-max:"4096"`
	CurrentEpochAttestations    []*PendingAttestation `ssz-max:"4096"`
	JustificationBits           bitfield.Bitvector4   `ssz-size:"1"`
	PreviousJustifiedCheckpoint *ethpb.Checkpoint
	CurrentJustifiedCheckpoint  *ethpb.Checkpoint
	FinalizedCheckpoint         *ethpb.Checkpoint
}

// PendingAttestation is an attestation awaiting epoch processing.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist `ssz-max:"2048"`
	Data            *ethpb.AttestationData
	InclusionDelay  uint64
	ProposerIndex   uint64
}

// HistoricalBatch is the pair of root vectors folded into historical_roots.
type HistoricalBatch struct {
	BlockRoots [][]byte `ssz-size:"8192,32"`
	StateRoots [][]byte `ssz-size:"8192,32"`
}
