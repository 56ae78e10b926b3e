package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
)

func Test_SealBlock(t *testing.T) {
	engine := signature.Recoverable{}
	records := signedRecords(t, engine)

	type table struct {
		name       string
		difficulty uint
	}

	tt := []table{
		{name: "zero", difficulty: 0},
		{name: "one", difficulty: 1},
		{name: "two", difficulty: 2},
		{name: "three", difficulty: 3},
	}

	t.Log("Given the need to seal blocks with a proof of work.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen sealing at difficulty %d.", testID, tst.difficulty)
				{
					nb, err := database.NewBlock(1_600_000_000_000, "0", "", records)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct a block: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to construct a block.", success, testID)

					block, err := nb.Seal(context.Background(), tst.difficulty, nil)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to seal the block: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to seal the block.", success, testID)

					if !strings.HasPrefix(block.Hash, strings.Repeat("0", int(tst.difficulty))) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d leading zeros: %s", failed, testID, tst.difficulty, block.Hash)
					}
					t.Logf("\t%s\tTest %d:\tShould have %d leading zeros.", success, testID, tst.difficulty)

					hash, err := block.ComputeHash()
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to recompute the hash: %v", failed, testID, err)
					}

					if hash != block.Hash {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, hash)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, block.Hash)
						t.Fatalf("\t%s\tTest %d:\tShould store the hash of its content.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould store the hash of its content.", success, testID)

					if !block.HasValidRecords(engine) {
						t.Fatalf("\t%s\tTest %d:\tShould have valid records.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould have valid records.", success, testID)

					if nb.Header.Nonce != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould leave the unsealed block untouched.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould leave the unsealed block untouched.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_BlockHashCoversContent(t *testing.T) {
	engine := signature.Recoverable{}
	records := signedRecords(t, engine)

	t.Log("Given the need to detect changes to a sealed block.")
	{
		nb, err := database.NewBlock(1_600_000_000_000, "0", "", records)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}

		block, err := nb.Seal(context.Background(), 1, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to seal the block: %v", failed, err)
		}

		reordered := block
		reordered.Records = []database.Record{block.Records[1], block.Records[0]}
		if hash, _ := reordered.ComputeHash(); hash == block.Hash {
			t.Fatalf("\t%s\tShould change the hash when records are reordered.", failed)
		}
		t.Logf("\t%s\tShould change the hash when records are reordered.", success)

		changed := block
		changed.Records = append([]database.Record{}, block.Records...)
		mint := changed.Records[1].(database.MintTx)
		mint.Value = 1_000_000
		changed.Records[1] = mint
		if hash, _ := changed.ComputeHash(); hash == block.Hash {
			t.Fatalf("\t%s\tShould change the hash when an amount changes.", failed)
		}
		t.Logf("\t%s\tShould change the hash when an amount changes.", success)

		if err := changed.ValidateBlock(database.Block{Hash: "0"}, engine, nil); !errors.Is(err, database.ErrInvalidBlock) {
			t.Fatalf("\t%s\tShould fail validation after an amount changes: %v", failed, err)
		}
		t.Logf("\t%s\tShould fail validation after an amount changes.", success)

		if err := block.ValidateBlock(database.Block{Hash: "0"}, engine, nil); err != nil {
			t.Fatalf("\t%s\tShould pass validation with the right parent: %v", failed, err)
		}
		t.Logf("\t%s\tShould pass validation with the right parent.", success)

		if err := block.ValidateBlock(database.Block{Hash: "1"}, engine, nil); !errors.Is(err, database.ErrInvalidBlock) {
			t.Fatalf("\t%s\tShould fail validation with the wrong parent: %v", failed, err)
		}
		t.Logf("\t%s\tShould fail validation with the wrong parent.", success)
	}
}

func Test_CloneBlock(t *testing.T) {
	engine := signature.Recoverable{}

	t.Log("Given the need to hand out blocks without sharing records.")
	{
		block, err := database.NewBlock(1_600_000_000_000, "0", "", signedRecords(t, engine))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}

		cpy := block.Clone()
		cpy.Records[0] = database.NewMintTx(block.Records[0].Recipient(), 999_999)

		if _, ok := block.Records[0].(database.SignedTx); !ok {
			t.Fatalf("\t%s\tShould leave the original records untouched.", failed)
		}
		if hash, _ := block.ComputeHash(); hash != block.Hash {
			t.Fatalf("\t%s\tShould leave the original hash valid.", failed)
		}
		t.Logf("\t%s\tShould leave the original records untouched.", success)
	}
}

func Test_SealCancel(t *testing.T) {
	t.Log("Given the need to stop a proof of work that runs too long.")
	{
		nb, err := database.NewBlock(1_600_000_000_000, "0", "", nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// No hash has 64 leading zeros so only the deadline can stop this.
		_, err = nb.Seal(ctx, 64, nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("\t%s\tShould stop sealing when the deadline passes: %v", failed, err)
		}
		t.Logf("\t%s\tShould stop sealing when the deadline passes.", success)
	}
}

func Test_IsHashSolved(t *testing.T) {
	zeros := strings.Repeat("0", 64)
	hash := "00ab" + strings.Repeat("f", 60)

	tt := []struct {
		difficulty uint
		hash       string
		exp        bool
	}{
		{0, hash, true},
		{2, hash, true},
		{3, hash, false},
		{64, zeros, true},
		{65, zeros, false},
		{1, "0", false},
	}

	t.Log("Given the need to check the proof of work rules.")
	{
		for testID, tst := range tt {
			if got := database.IsHashSolved(tst.difficulty, tst.hash); got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould get %v for difficulty %d, got %v.", failed, testID, tst.exp, tst.difficulty, got)
			}
			t.Logf("\t%s\tTest %d:\tShould get %v for difficulty %d.", success, testID, tst.exp, tst.difficulty)
		}
	}
}

// =============================================================================

func signedRecords(t *testing.T, engine signature.Engine) []database.Record {
	t.Helper()

	from, to := keys(t)
	fromID := database.PublicKeyToAccountID(from.PublicKey)
	toID := database.PublicKeyToAccountID(to.PublicKey)

	tx, err := database.NewTx(fromID, toID, 10)
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	signedTx, err := tx.Sign(engine, from)
	if err != nil {
		t.Fatalf("Should be able to sign the transaction: %s", err)
	}

	return []database.Record{signedTx, database.NewMintTx(fromID, 100)}
}
