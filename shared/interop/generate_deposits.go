package interop

import (
	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/transition-vectors/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/transition-vectors/shared/bls"
	"github.com/prysmaticlabs/transition-vectors/shared/depositutil"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/trieutil"
)

// DepositDataFromKeys generates a list of deposit data items and their hash tree roots
// from the given private keys. Each deposit carries MAX_EFFECTIVE_BALANCE and withdraws
// to the depositing key.
func DepositDataFromKeys(privKeys []bls.SecretKey, pubKeys []bls.PublicKey) ([]*ethpb.Deposit_Data, [][]byte, error) {
	if len(privKeys) != len(pubKeys) {
		return nil, nil, errors.Errorf("got %d private keys for %d public keys", len(privKeys), len(pubKeys))
	}
	dataList := make([]*ethpb.Deposit_Data, len(privKeys))
	dataRoots := make([][]byte, len(privKeys))
	for i := range privKeys {
		data, root, err := depositutil.DepositInput(privKeys[i], privKeys[i], params.BeaconConfig().MaxEffectiveBalance)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not create deposit data for key %#x", pubKeys[i].Marshal())
		}
		dataList[i] = data
		dataRoots[i] = root[:]
	}
	return dataList, dataRoots, nil
}

// GenerateDepositsFromData a list of deposit items by creating proofs for each of them from a sparse Merkle trie.
func GenerateDepositsFromData(depositDataItems []*ethpb.Deposit_Data, trie *trieutil.SparseMerkleTrie) ([]*ethpb.Deposit, error) {
	deposits := make([]*ethpb.Deposit, len(depositDataItems))
	for i, item := range depositDataItems {
		proof, err := trie.MerkleProof(i)
		if err != nil {
			return nil, errors.Wrapf(err, "could not generate proof for index %d", i)
		}
		deposits[i] = &ethpb.Deposit{
			Proof: proof,
			Data:  item,
		}
	}
	return deposits, nil
}

// DepositTrieFromData builds the deposit contract trie holding the given deposit data roots.
func DepositTrieFromData(dataRoots [][]byte) (*trieutil.SparseMerkleTrie, error) {
	return trieutil.GenerateTrieFromItems(dataRoots, params.BeaconConfig().DepositContractTreeDepth)
}
