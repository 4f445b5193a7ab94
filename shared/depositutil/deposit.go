// Package depositutil contains useful functions for dealing
// with deposit data and its proof of possession.
package depositutil

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/helpers"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/hashutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

// ErrInvalidDepositSignature is returned when the proof of possession of a deposit does not verify.
var ErrInvalidDepositSignature = errors.New("invalid deposit signature")

// DepositInput for a given key. The returned data carries a proof of possession
// signed by the deposit key over the deposit message, together with its hash tree root.
//
// Deposit signing:
//   - pack pubkey, withdrawal_credentials and amount into a DepositMessage;
//   - sign compute_signing_root(message, compute_domain(DOMAIN_DEPOSIT)).
//     Deposits are valid regardless of fork version.
func DepositInput(depositKey, withdrawalKey bls.SecretKey, amountInGwei uint64) (*ethpb.Deposit_Data, [32]byte, error) {
	msg := &ethpb.DepositMessage{
		PublicKey:             depositKey.PublicKey().Marshal(),
		WithdrawalCredentials: WithdrawalCredentialsHash(withdrawalKey),
		Amount:                amountInGwei,
	}
	domain, err := helpers.ComputeDomain(params.BeaconConfig().DomainDeposit, nil, nil)
	if err != nil {
		return nil, [32]byte{}, err
	}
	root, err := helpers.ComputeSigningRoot(msg, domain)
	if err != nil {
		return nil, [32]byte{}, errors.Wrap(err, "could not compute deposit signing root")
	}
	di := &ethpb.Deposit_Data{
		PublicKey:             msg.PublicKey,
		WithdrawalCredentials: msg.WithdrawalCredentials,
		Amount:                msg.Amount,
		Signature:             depositKey.Sign(root[:]).Marshal(),
	}
	dr, err := di.HashTreeRoot()
	if err != nil {
		return nil, [32]byte{}, err
	}
	return di, dr, nil
}

// WithdrawalCredentialsHash forms a 32 byte hash of the withdrawal public
// address.
//
// The specification is as follows:
//   withdrawal_credentials[:1] == BLS_WITHDRAWAL_PREFIX_BYTE
//   withdrawal_credentials[1:] == hash(withdrawal_pubkey)[1:]
// where withdrawal_credentials is of type bytes32.
func WithdrawalCredentialsHash(withdrawalKey bls.SecretKey) []byte {
	h := hashutil.Hash(withdrawalKey.PublicKey().Marshal())
	return append([]byte{params.BeaconConfig().BLSWithdrawalPrefixByte}, h[1:]...)[:32]
}

// VerifyDepositSignature verifies the proof of possession carried by deposit data.
// The data itself is left untouched.
func VerifyDepositSignature(dd *ethpb.Deposit_Data) error {
	if dd == nil {
		return errors.New("nil deposit data")
	}
	blsPubkey, err := bls.PublicKeyFromBytes(dd.PublicKey)
	if err != nil {
		return errors.Wrap(ErrInvalidDepositSignature, err.Error())
	}
	blsSig, err := bls.SignatureFromBytes(dd.Signature)
	if err != nil {
		return errors.Wrap(ErrInvalidDepositSignature, err.Error())
	}
	domain, err := helpers.ComputeDomain(params.BeaconConfig().DomainDeposit, nil, nil)
	if err != nil {
		return err
	}
	msg := &ethpb.DepositMessage{
		PublicKey:             dd.PublicKey,
		WithdrawalCredentials: dd.WithdrawalCredentials,
		Amount:                dd.Amount,
	}
	signedRoot, err := helpers.ComputeSigningRoot(msg, domain)
	if err != nil {
		return err
	}
	if !blsSig.Verify(blsPubkey, signedRoot[:]) {
		return ErrInvalidDepositSignature
	}
	return nil
}
