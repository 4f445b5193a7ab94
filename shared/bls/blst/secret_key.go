package blst

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/bls/common"
	"github.com/prysmaticlabs/transition-vectors/shared/bls/iface"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	blst "github.com/supranational/blst/bindings/go"
)

// bls12SecretKey used in the BLS signature scheme.
type bls12SecretKey struct {
	p *blst.SecretKey
}

// SecretKeyFromSeed derives a BLS private key from at least 32 bytes of
// input keying material with the IETF KeyGen procedure.
func SecretKeyFromSeed(ikm []byte) (iface.SecretKey, error) {
	if len(ikm) < 32 {
		return nil, errors.New("key material must be at least 32 bytes")
	}
	secKey := blst.KeyGen(ikm)
	if secKey == nil {
		return nil, errors.New("could not derive secret key")
	}
	return &bls12SecretKey{p: secKey}, nil
}

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (iface.SecretKey, error) {
	if len(privKey) != params.BeaconConfig().BLSSecretKeyLength {
		return nil, fmt.Errorf("secret key must be %d bytes", params.BeaconConfig().BLSSecretKeyLength)
	}
	if common.SecretKeyIsZero(privKey) {
		return nil, common.ErrZeroKey
	}
	secKey := new(blst.SecretKey).Deserialize(privKey)
	if secKey == nil {
		return nil, common.ErrSecretUnmarshal
	}

	return &bls12SecretKey{p: secKey}, nil
}

// PublicKey obtains the public key corresponding to the BLS secret key.
func (s *bls12SecretKey) PublicKey() iface.PublicKey {
	return &PublicKey{p: new(blstPublicKey).From(s.p)}
}

// Sign a message using a secret key.
//
// In IETF draft BLS specification:
// Sign(SK, message) -> signature: a signing algorithm that generates
//      a deterministic signature given a secret key SK and a message.
func (s *bls12SecretKey) Sign(msg []byte) iface.Signature {
	signature := new(blstSignature).Sign(s.p, msg, dst)
	return &Signature{s: signature}
}

// Marshal a secret key into a LittleEndian byte slice.
func (s *bls12SecretKey) Marshal() []byte {
	keyBytes := s.p.Serialize()
	if len(keyBytes) < params.BeaconConfig().BLSSecretKeyLength {
		emptyBytes := make([]byte, params.BeaconConfig().BLSSecretKeyLength-len(keyBytes))
		keyBytes = append(emptyBytes, keyBytes...)
	}
	return keyBytes
}
