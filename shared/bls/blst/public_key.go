package blst

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/bls/common"
	"github.com/prysmaticlabs/transition-vectors/shared/bls/iface"
	"github.com/prysmaticlabs/transition-vectors/shared/featureconfig"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
)

var maxKeys = int64(1000000)
var pubkeyCache, _ = ristretto.NewCache(&ristretto.Config{
	NumCounters: maxKeys,
	MaxCost:     1 << 26, // ~64mb is cache max size
	BufferItems: 64,
})

// PublicKey used in the BLS signature scheme.
type PublicKey struct {
	p *blstPublicKey
}

// PublicKeyFromBytes creates a BLS public key from a BigEndian byte slice.
func PublicKeyFromBytes(pubKey []byte) (iface.PublicKey, error) {
	if len(pubKey) != params.BeaconConfig().BLSPubkeyLength {
		return nil, fmt.Errorf("public key must be %d bytes", params.BeaconConfig().BLSPubkeyLength)
	}
	useCache := !featureconfig.Get().DisablePubkeyCache
	if useCache {
		if cv, ok := pubkeyCache.Get(string(pubKey)); ok {
			return cv.(*PublicKey).Copy(), nil
		}
	}
	p := new(blstPublicKey).Uncompress(pubKey)
	if p == nil {
		return nil, common.ErrPubkeyUnmarshal
	}
	pubKeyObj := &PublicKey{p: p}
	if pubKeyObj.IsInfinite() {
		return nil, common.ErrInfinitePubKey
	}
	if !p.KeyValidate() {
		return nil, errors.New("public key not in group")
	}
	if useCache {
		copiedKey := pubKeyObj.Copy()
		pubkeyCache.Set(string(pubKey), copiedKey, 48)
	}
	return pubKeyObj, nil
}

// AggregatePublicKeys aggregates the provided raw public keys into a single key.
func AggregatePublicKeys(pubs [][]byte) (iface.PublicKey, error) {
	if len(pubs) == 0 {
		return nil, errors.New("no public keys to aggregate")
	}
	mulP1 := make([]*blstPublicKey, 0, len(pubs))
	for _, pubkey := range pubs {
		pubKeyObj, err := PublicKeyFromBytes(pubkey)
		if err != nil {
			return nil, err
		}
		mulP1 = append(mulP1, pubKeyObj.(*PublicKey).p)
	}
	// Keys were group checked on decompression.
	agg := new(blstAggregatePublicKey)
	agg.Aggregate(mulP1, false)
	return &PublicKey{p: agg.ToAffine()}, nil
}

// Marshal a public key into a LittleEndian byte slice.
func (p *PublicKey) Marshal() []byte {
	return p.p.Compress()
}

// Copy the public key to a new pointer reference.
func (p *PublicKey) Copy() iface.PublicKey {
	np := *p.p
	return &PublicKey{p: &np}
}

// IsInfinite checks if the public key is infinite.
func (p *PublicKey) IsInfinite() bool {
	zeroKey := new(blstPublicKey)
	return p.p.Equals(zeroKey)
}

// Equals checks if the provided public key is equal to
// the current one.
func (p *PublicKey) Equals(p2 iface.PublicKey) bool {
	return p.p.Equals(p2.(*PublicKey).p)
}

// Aggregate two public keys.
func (p *PublicKey) Aggregate(p2 iface.PublicKey) iface.PublicKey {
	agg := new(blstAggregatePublicKey)
	agg.Aggregate([]*blstPublicKey{p.p, p2.(*PublicKey).p}, false)
	p.p = agg.ToAffine()

	return p
}
