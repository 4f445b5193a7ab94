// Package verification defines the classified errors returned by the state transition.
package verification

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a state transition failure.
type Kind string

// Failure classes. Classify returns one of these for any error produced by the transition.
const (
	KindNone           Kind = ""
	KindSlotOrder      Kind = "slot_order"
	KindSignature      Kind = "signature"
	KindStructural     Kind = "structural"
	KindStateInvariant Kind = "state_invariant"
	KindUnknown        Kind = "unknown"
)

// InvariantKind names the state precondition a StateInvariantError violated.
type InvariantKind string

// Known state invariant kinds.
const (
	NotSlashable         InvariantKind = "not_slashable"
	NotSlashableData     InvariantKind = "not_slashable_data"
	NoSlashableIndex     InvariantKind = "no_slashable_index"
	ProposerSlashed      InvariantKind = "proposer_slashed"
	InvalidDepositProof  InvariantKind = "invalid_deposit_proof"
	ExitNotActive        InvariantKind = "exit_not_active"
	ExitAlreadyInitiated InvariantKind = "exit_already_initiated"
	ExitEpochInFuture    InvariantKind = "exit_epoch_in_future"
	ExitTooEarly         InvariantKind = "exit_too_early"
	InsufficientBalance  InvariantKind = "insufficient_balance"
	TransferRestricted   InvariantKind = "transfer_restricted"
	TransferDust         InvariantKind = "transfer_dust"
	TransferWrongSlot    InvariantKind = "transfer_wrong_slot"
	AttestationInvalid   InvariantKind = "attestation_invalid"
)

// SlotOrderError is returned when a block slot is not strictly greater than the state slot.
type SlotOrderError struct {
	BlockSlot uint64
	StateSlot uint64
}

func (e *SlotOrderError) Error() string {
	return fmt.Sprintf("block slot %d is not after state slot %d", e.BlockSlot, e.StateSlot)
}

// SignatureError is returned when a required signature does not verify.
type SignatureError struct {
	Op  string
	Err error
}

func (e *SignatureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s signature did not verify", e.Op)
	}
	return fmt.Sprintf("%s signature did not verify: %v", e.Op, e.Err)
}

// Unwrap is used by errors.Is to unwrap errors.
func (e *SignatureError) Unwrap() error {
	return e.Err
}

// StructuralError is returned for malformed blocks and operations.
type StructuralError struct {
	Detail string
}

func (e *StructuralError) Error() string {
	return "malformed block: " + e.Detail
}

// StateInvariantError is returned when an operation precondition fails against the current state.
type StateInvariantError struct {
	Kind   InvariantKind
	Detail string
}

func (e *StateInvariantError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewSignatureError wraps err as a failed signature check for op.
func NewSignatureError(op string, err error) error {
	return &SignatureError{Op: op, Err: err}
}

// Structuralf formats a StructuralError.
func Structuralf(format string, args ...interface{}) error {
	return &StructuralError{Detail: fmt.Sprintf(format, args...)}
}

// Invariantf formats a StateInvariantError of the given kind.
func Invariantf(kind InvariantKind, format string, args ...interface{}) error {
	return &StateInvariantError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Classify returns the failure class of err, looking through any wrapping.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var slotErr *SlotOrderError
	var sigErr *SignatureError
	var structErr *StructuralError
	var invErr *StateInvariantError
	switch {
	case errors.As(err, &slotErr):
		return KindSlotOrder
	case errors.As(err, &sigErr):
		return KindSignature
	case errors.As(err, &structErr):
		return KindStructural
	case errors.As(err, &invErr):
		return KindStateInvariant
	}
	return KindUnknown
}

// InvariantOf returns the invariant kind carried by err, if any.
func InvariantOf(err error) (InvariantKind, bool) {
	var invErr *StateInvariantError
	if errors.As(err, &invErr) {
		return invErr.Kind, true
	}
	return "", false
}
