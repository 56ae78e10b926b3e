// Package signature provides helper functions for handling the blockchain
// hashing and signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Set of engine names that can be retrieved.
const (
	EngineRecoverable = "recoverable"
	EngineDER         = "der"
)

// ErrMalformedKey is returned when a private key can't be used for signing.
var ErrMalformedKey = errors.New("malformed private key")

// =============================================================================

// Engine represents the behavior required to sign and verify digests over
// the secp256k1 curve. An engine is provided to the code that needs it so
// different encodings can be used side by side.
type Engine interface {
	Name() string
	Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error)
	Verify(publicKey []byte, digest []byte, sig []byte) bool
}

// Retrieve returns the engine registered for the specified name.
func Retrieve(name string) (Engine, error) {
	switch name {
	case EngineRecoverable:
		return Recoverable{}, nil
	case EngineDER:
		return DER{}, nil
	}

	return nil, fmt.Errorf("engine %q does not exist", name)
}

// =============================================================================

// Digest returns the sha256 of the RLP encoding of the value. RLP prefixes
// every field with its length so two different values can't share an
// encoding by shifting bytes across a field boundary.
func Digest(value any) ([]byte, error) {
	data, err := rlp.EncodeToBytes(value)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}

	hash := sha256.Sum256(data)
	return hash[:], nil
}

// Hash returns a unique 64 character hex string for the value.
func Hash(value any) (string, error) {
	digest, err := Digest(value)
	if err != nil {
		return "", err
	}

	return common.Bytes2Hex(digest), nil
}
