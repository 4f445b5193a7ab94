// Package scenario runs sanity scenarios against a pre-state and records what they
// emit as a conformance vector: the pre-state, the ordered blocks applied to it and
// the post-state.
package scenario

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/state"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/verification"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// Body is a scenario script. It receives its own copy of the pre-state and the
// signature mode read from the descriptor.
type Body func(ctx context.Context, e Emitter, st *state.BeaconState, mode transition.SignatureMode) error

// Descriptor names a scenario and the signature mode it runs under.
type Descriptor struct {
	Name string
	BLS  transition.SignatureMode
	Body Body
}

// TaggedBlock is an applied block with its declared type.
type TaggedBlock struct {
	Block *ethpb.SignedBeaconBlock
	Type  string
}

// Vector is the output of a scenario run. Post is nil when the scenario failed.
type Vector struct {
	Name   string
	BLS    transition.SignatureMode
	Pre    *state.BeaconState
	Blocks []TaggedBlock
	Post   *state.BeaconState
}

// Complete reports whether the vector carries both checkpoints.
func (v *Vector) Complete() bool {
	return v != nil && v.Pre != nil && v.Post != nil
}

// BlockTypes lists the declared type of every block, in order.
func (v *Vector) BlockTypes() []string {
	types := make([]string, len(v.Blocks))
	for i, b := range v.Blocks {
		types[i] = b.Type
	}
	return types
}

// Driver runs scenarios one at a time.
type Driver struct{}

// NewDriver returns a scenario driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Run executes the scenario body against a copy of pre. When the body fails, the
// partial vector is returned alongside the error: pre and the blocks emitted so far
// remain valid, and post is left nil.
func (d *Driver) Run(ctx context.Context, desc Descriptor, pre *state.BeaconState) (*Vector, error) {
	ctx, span := trace.StartSpan(ctx, "scenario.Run")
	defer span.End()
	span.AddAttributes(
		trace.StringAttribute("scenario", desc.Name),
		trace.StringAttribute("bls", desc.BLS.String()),
	)

	if desc.Body == nil {
		return nil, errors.Errorf("scenario %s has no body", desc.Name)
	}
	if pre == nil {
		return nil, errors.Errorf("scenario %s: nil pre state", desc.Name)
	}
	if _, err := transition.SignatureModeFromBLSSetting(desc.BLS.BLSSetting()); err != nil {
		return nil, errors.Wrapf(err, "scenario %s", desc.Name)
	}

	v := &Vector{Name: desc.Name, BLS: desc.BLS}
	rec := newRecorder(v)
	start := time.Now()
	err := desc.Body(ctx, rec, pre.Copy(), desc.BLS)
	if err == nil && rec.phase != phaseDone {
		err = ErrMissingPost
	}
	scenarioDuration.Observe(float64(time.Since(start).Milliseconds()))

	fields := logrus.Fields{
		"scenario": desc.Name,
		"bls":      desc.BLS.String(),
		"blocks":   len(v.Blocks),
	}
	if err != nil {
		// A body may fail after emitting post, the vector is still partial then.
		v.Post = nil
		kind := verification.Classify(err)
		scenarioRuns.WithLabelValues("failed").Inc()
		fields["kind"] = string(kind)
		log.WithFields(fields).WithError(err).Error("Scenario failed")
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		return v, errors.Wrapf(err, "scenario %s failed", desc.Name)
	}
	scenarioRuns.WithLabelValues("ok").Inc()
	log.WithFields(fields).Info("Scenario completed")
	return v, nil
}

// ApplyAndEmit applies blk to st through the state transition and emits the block once
// it has been applied. The returned state is the post-state of the block.
func ApplyAndEmit(
	ctx context.Context,
	e Emitter,
	st *state.BeaconState,
	blk *ethpb.SignedBeaconBlock,
	mode transition.SignatureMode,
) (*state.BeaconState, error) {
	if blk == nil || blk.Block == nil {
		return nil, verification.Structuralf("nil block")
	}
	post, err := transition.ApplyBlock(ctx, st, blk, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "could not apply block at slot %d", blk.Block.Slot)
	}
	if err := e.Block(blk, SignedBeaconBlockType); err != nil {
		return nil, err
	}
	return post, nil
}
