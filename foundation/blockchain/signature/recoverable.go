package signature

import (
	"bytes"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
)

// Recoverable signs digests the Ethereum way, producing a 65 byte signature
// in the [R|S|V] format where V is the recovery id.
type Recoverable struct{}

// Name returns the name of the engine.
func (Recoverable) Name() string {
	return EngineRecoverable
}

// Sign uses the specified private key to sign the digest.
func (Recoverable) Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil || privateKey.D == nil {
		return nil, ErrMalformedKey
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(digest, privateKey)
	if err != nil {
		return nil, err
	}

	return sig, nil
}

// Verify reports whether the signature was produced over the digest by the
// private key of the specified uncompressed public key.
func (Recoverable) Verify(publicKey []byte, digest []byte, sig []byte) bool {
	if len(sig) != crypto.SignatureLength || len(digest) != crypto.DigestLength {
		return false
	}

	// Check the recovery id is either 0 or 1.
	if sig[crypto.RecoveryIDOffset] > 1 {
		return false
	}

	// This rejects malleable signatures where S is in the upper half
	// of the curve order.
	if !crypto.VerifySignature(publicKey, digest, sig[:crypto.RecoveryIDOffset]) {
		return false
	}

	// The recovery id is part of the signature so it must point back
	// to the same public key.
	recovered, err := crypto.Ecrecover(digest, sig)
	if err != nil {
		return false
	}

	return bytes.Equal(recovered, publicKey)
}
