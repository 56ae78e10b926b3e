package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	pkHexKey    = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	t.Log("Given the need to hash values.")
	{
		h1, err := signature.Hash(value)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to hash a value: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to hash a value.", success)

		if len(h1) != 64 {
			t.Fatalf("\t%s\tShould get back a 64 character hash: got %d", failed, len(h1))
		}
		t.Logf("\t%s\tShould get back a 64 character hash.", success)

		h2, err := signature.Hash(value)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to hash a value twice: %v", failed, err)
		}

		if h1 != h2 {
			t.Logf("\t%s\tgot: %s", failed, h2)
			t.Logf("\t%s\texp: %s", failed, h1)
			t.Fatalf("\t%s\tShould get back the same hash twice.", failed)
		}
		t.Logf("\t%s\tShould get back the same hash twice.", success)
	}
}

func Test_HashFieldBoundaries(t *testing.T) {
	type pair struct {
		A string
		B string
	}

	t.Log("Given the need to hash values with shifted field boundaries.")
	{
		h1, err := signature.Hash(pair{A: "ab", B: "c"})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to hash the first value: %v", failed, err)
		}

		h2, err := signature.Hash(pair{A: "a", B: "bc"})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to hash the second value: %v", failed, err)
		}

		if h1 == h2 {
			t.Fatalf("\t%s\tShould get different hashes when bytes move across fields.", failed)
		}
		t.Logf("\t%s\tShould get different hashes when bytes move across fields.", success)
	}
}

func Test_Signing(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}
	other, err := crypto.HexToECDSA(otherHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	digest, err := signature.Digest("Bill")
	if err != nil {
		t.Fatalf("Should be able to produce a digest: %s", err)
	}
	otherDigest, err := signature.Digest("Jill")
	if err != nil {
		t.Fatalf("Should be able to produce a digest: %s", err)
	}

	publicKey := crypto.FromECDSAPub(&pk.PublicKey)
	otherPublicKey := crypto.FromECDSAPub(&other.PublicKey)

	for _, name := range []string{signature.EngineRecoverable, signature.EngineDER} {
		engine, err := signature.Retrieve(name)
		if err != nil {
			t.Fatalf("Should be able to retrieve engine %s: %s", name, err)
		}

		f := func(t *testing.T) {
			t.Logf("Given the need to sign and verify with the %s engine.", name)
			{
				sig, err := engine.Sign(digest, pk)
				if err != nil {
					t.Fatalf("\t%s\tShould be able to sign data: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to sign data.", success)

				if !engine.Verify(publicKey, digest, sig) {
					t.Fatalf("\t%s\tShould be able to verify the signature.", failed)
				}
				t.Logf("\t%s\tShould be able to verify the signature.", success)

				if engine.Verify(otherPublicKey, digest, sig) {
					t.Fatalf("\t%s\tShould reject the signature for another key.", failed)
				}
				t.Logf("\t%s\tShould reject the signature for another key.", success)

				if engine.Verify(publicKey, otherDigest, sig) {
					t.Fatalf("\t%s\tShould reject the signature for another digest.", failed)
				}
				t.Logf("\t%s\tShould reject the signature for another digest.", success)

				for i := range sig {
					tampered := make([]byte, len(sig))
					copy(tampered, sig)
					tampered[i] ^= 0xff

					if engine.Verify(publicKey, digest, tampered) {
						t.Fatalf("\t%s\tShould reject the signature with byte %d flipped.", failed, i)
					}
				}
				t.Logf("\t%s\tShould reject the signature with any byte flipped.", success)

				malformed := [][]byte{nil, {}, sig[:len(sig)/2], sig[:len(sig)-1], append(append([]byte{}, sig...), 0x00)}
				for i, m := range malformed {
					if engine.Verify(publicKey, digest, m) {
						t.Fatalf("\t%s\tShould reject malformed signature %d.", failed, i)
					}
				}
				t.Logf("\t%s\tShould reject empty, truncated and padded signatures.", success)

				if engine.Verify([]byte{0x04, 0x01}, digest, sig) {
					t.Fatalf("\t%s\tShould reject a malformed public key.", failed)
				}
				t.Logf("\t%s\tShould reject a malformed public key.", success)

				if _, err := engine.Sign(digest, nil); err == nil {
					t.Fatalf("\t%s\tShould fail to sign with a missing key.", failed)
				}
				t.Logf("\t%s\tShould fail to sign with a missing key.", success)
			}
		}

		t.Run(name, f)
	}
}

func Test_Retrieve(t *testing.T) {
	t.Log("Given the need to retrieve engines by name.")
	{
		if _, err := signature.Retrieve("unknown"); err == nil {
			t.Fatalf("\t%s\tShould fail for an unknown engine.", failed)
		}
		t.Logf("\t%s\tShould fail for an unknown engine.", success)

		engine, err := signature.Retrieve(signature.EngineDER)
		if err != nil {
			t.Fatalf("\t%s\tShould retrieve the der engine: %v", failed, err)
		}

		if engine.Name() != signature.EngineDER {
			t.Fatalf("\t%s\tShould get back the engine asked for: got %s", failed, engine.Name())
		}
		t.Logf("\t%s\tShould get back the engine asked for.", success)
	}
}
