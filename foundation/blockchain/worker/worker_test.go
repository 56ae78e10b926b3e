package worker_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/genesis"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
	"github.com/shub-dab/blockchain/foundation/blockchain/state"
	"github.com/shub-dab/blockchain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_MiningWorker(t *testing.T) {
	gen := genesis.Default()
	gen.Difficulty = 1

	st, tx := setup(t, gen)

	t.Log("Given the need to mine in the background.")
	{
		w := worker.Run(st, tx.FromID, t.Logf)
		defer st.Shutdown()

		if st.Worker != w {
			t.Fatalf("\t%s\tShould register the worker with the state.", failed)
		}
		t.Logf("\t%s\tShould register the worker with the state.", success)

		if err := st.AddTransaction(tx); err != nil {
			t.Fatalf("\t%s\tShould be able to add a transaction: %v", failed, err)
		}

		st.Worker.SignalStartMining()

		deadline := time.Now().Add(10 * time.Second)
		for len(st.RetrieveBlocks()) < 2 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould mine a block after being signaled.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould mine a block after being signaled.", success)

		if n := st.QueryMempoolLength(); n != 0 {
			t.Fatalf("\t%s\tShould have no pending transactions: got %d", failed, n)
		}
		t.Logf("\t%s\tShould have no pending transactions.", success)

		if bal := st.QueryBalance(tx.FromID); bal != 90 {
			t.Fatalf("\t%s\tShould pay the reward to the beneficiary: got %d", failed, bal)
		}
		t.Logf("\t%s\tShould pay the reward to the beneficiary.", success)
	}
}

func Test_MiningWorkerShutdown(t *testing.T) {
	gen := genesis.Default()
	gen.Difficulty = 64

	st, tx := setup(t, gen)

	t.Log("Given the need to shut down while a block can't be solved.")
	{
		worker.Run(st, tx.FromID, t.Logf)

		if err := st.AddTransaction(tx); err != nil {
			t.Fatalf("\t%s\tShould be able to add a transaction: %v", failed, err)
		}
		st.Worker.SignalStartMining()

		// Give the worker a chance to start sealing.
		time.Sleep(50 * time.Millisecond)

		done := make(chan struct{})
		go func() {
			st.Shutdown()
			close(done)
		}()

		select {
		case <-done:
			t.Logf("\t%s\tShould cancel mining and shut down.", success)
		case <-time.After(10 * time.Second):
			t.Fatalf("\t%s\tShould cancel mining and shut down.", failed)
		}

		if len(st.RetrieveBlocks()) != 1 || st.QueryMempoolLength() != 1 {
			t.Fatalf("\t%s\tShould leave the chain unchanged.", failed)
		}
		t.Logf("\t%s\tShould leave the chain unchanged.", success)
	}
}

// =============================================================================

func setup(t *testing.T, gen genesis.Genesis) (*state.State, database.SignedTx) {
	t.Helper()

	engine := signature.Recoverable{}

	st, err := state.New(state.Config{
		Genesis: gen,
		Engine:  engine,
	})
	if err != nil {
		t.Fatal(err)
	}

	from, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
	if err != nil {
		t.Fatal(err)
	}
	to, err := crypto.HexToECDSA("8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0")
	if err != nil {
		t.Fatal(err)
	}

	tx, err := database.NewTx(database.PublicKeyToAccountID(from.PublicKey), database.PublicKeyToAccountID(to.PublicKey), 10)
	if err != nil {
		t.Fatal(err)
	}

	signedTx, err := tx.Sign(engine, from)
	if err != nil {
		t.Fatal(err)
	}

	return st, signedTx
}
