package database

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// AccountID represents an account id that is used to sign transactions and is
// associated with transactions on the blockchain. It is the hex encoding of
// the uncompressed public key.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(strings.ToLower(hex))
	if !a.IsAccountID() {
		return "", fmt.Errorf("invalid account format: %q", hex)
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(hexutil.Encode(crypto.FromECDSAPub(&pk)))
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded uncompressed public key.
func (a AccountID) IsAccountID() bool {
	b, err := hexutil.Decode(string(a))
	if err != nil {
		return false
	}

	if _, err := crypto.UnmarshalPubkey(b); err != nil {
		return false
	}

	return string(a) == hexutil.Encode(b)
}

// Bytes returns the uncompressed public key the account represents.
func (a AccountID) Bytes() ([]byte, error) {
	b, err := hexutil.Decode(string(a))
	if err != nil {
		return nil, fmt.Errorf("decoding account: %w", err)
	}

	if _, err := crypto.UnmarshalPubkey(b); err != nil {
		return nil, fmt.Errorf("parsing account: %w", err)
	}

	return b, nil
}
