package common

import "github.com/pkg/errors"

var (
	// ErrZeroKey is returned for an all zero secret key.
	ErrZeroKey = errors.New("received secret key is zero")
	// ErrInfinitePubKey is returned for the point at infinity used as a public key.
	ErrInfinitePubKey = errors.New("received an infinite public key")
	// ErrSecretUnmarshal is returned when bytes do not decode to a secret key.
	ErrSecretUnmarshal = errors.New("could not unmarshal bytes into secret key")
	// ErrPubkeyUnmarshal is returned when bytes do not decode to a compressed G1 point.
	ErrPubkeyUnmarshal = errors.New("could not unmarshal bytes into public key")
)
