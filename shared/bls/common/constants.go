// Package common holds constants and errors shared by the bls facade and its backend.
package common

import "bytes"

// ZeroSecretKey represents a zero secret key.
var ZeroSecretKey = [32]byte{}

// InfinitePublicKey represents an infinite public key.
var InfinitePublicKey = [48]byte{0xC0}

// InfiniteSignature represents an infinite signature.
var InfiniteSignature = [96]byte{0xC0}

// SecretKeyIsZero checks the validity of a secret key.
func SecretKeyIsZero(key []byte) bool {
	return bytes.Equal(key, ZeroSecretKey[:])
}

// SignatureIsInfinite checks whether a compressed signature is the point at infinity.
func SignatureIsInfinite(sig []byte) bool {
	return bytes.Equal(sig, InfiniteSignature[:])
}
