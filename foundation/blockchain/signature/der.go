package signature

import (
	"crypto/ecdsa"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/crypto"
)

// DER signs digests with RFC6979 deterministic nonces and encodes the
// signature using the strict DER format.
type DER struct{}

// Name returns the name of the engine.
func (DER) Name() string {
	return EngineDER
}

// Sign uses the specified private key to sign the digest.
func (DER) Sign(digest []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil || privateKey.D == nil {
		return nil, ErrMalformedKey
	}

	keyBytes := crypto.FromECDSA(privateKey)
	if len(keyBytes) != 32 {
		return nil, ErrMalformedKey
	}

	pk := secp256k1.PrivKeyFromBytes(keyBytes)
	defer pk.Zero()

	return decred.Sign(pk, digest).Serialize(), nil
}

// Verify reports whether the signature was produced over the digest by the
// private key of the specified uncompressed public key.
func (DER) Verify(publicKey []byte, digest []byte, sig []byte) bool {
	if len(sig) == 0 || len(digest) == 0 {
		return false
	}

	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}

	parsed, err := decred.ParseDERSignature(sig)
	if err != nil {
		return false
	}

	return parsed.Verify(digest, pub)
}
