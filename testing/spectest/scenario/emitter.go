package scenario

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
)

// SignedBeaconBlockType is the declared type of every phase0 block in a vector.
const SignedBeaconBlockType = "SignedBeaconBlock"

var (
	// ErrPreNotFirst is returned when a block or post checkpoint is emitted before pre.
	ErrPreNotFirst = errors.New("pre must be emitted first")
	// ErrDuplicatePre is returned when pre is emitted twice.
	ErrDuplicatePre = errors.New("pre already emitted")
	// ErrEmitAfterPost is returned when anything is emitted after post.
	ErrEmitAfterPost = errors.New("vector already has a post state")
	// ErrMissingPost is returned when a scenario finishes without emitting post.
	ErrMissingPost = errors.New("scenario finished without emitting post")
)

// Emitter receives the checkpoints of a scenario. Pre is called exactly once and first,
// Block once per applied block, and Post exactly once and last.
type Emitter interface {
	Pre(st *state.BeaconState) error
	Block(blk *ethpb.SignedBeaconBlock, blockType string) error
	Post(st *state.BeaconState) error
}

type phase int

const (
	phaseStart phase = iota
	phaseBlocks
	phaseDone
)

// recorder is the Emitter handed to scenario bodies. Every checkpoint is copied on
// emission so the scenario can keep mutating its own state and blocks.
type recorder struct {
	vector *Vector
	phase  phase
}

func newRecorder(v *Vector) *recorder {
	return &recorder{vector: v}
}

func (r *recorder) Pre(st *state.BeaconState) error {
	switch r.phase {
	case phaseBlocks:
		return ErrDuplicatePre
	case phaseDone:
		return ErrEmitAfterPost
	}
	if st == nil {
		return errors.New("nil pre state")
	}
	r.vector.Pre = st.Copy()
	r.phase = phaseBlocks
	return nil
}

func (r *recorder) Block(blk *ethpb.SignedBeaconBlock, blockType string) error {
	switch r.phase {
	case phaseStart:
		return ErrPreNotFirst
	case phaseDone:
		return ErrEmitAfterPost
	}
	if blk == nil || blk.Block == nil {
		return errors.New("nil block")
	}
	if blockType == "" {
		return errors.New("empty block type")
	}
	r.vector.Blocks = append(r.vector.Blocks, TaggedBlock{
		Block: ethpb.CopySignedBeaconBlock(blk),
		Type:  blockType,
	})
	emittedBlocks.Inc()
	return nil
}

func (r *recorder) Post(st *state.BeaconState) error {
	switch r.phase {
	case phaseStart:
		return ErrPreNotFirst
	case phaseDone:
		return ErrEmitAfterPost
	}
	if st == nil {
		return errors.New("nil post state")
	}
	r.vector.Post = st.Copy()
	r.phase = phaseDone
	return nil
}
