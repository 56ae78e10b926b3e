// This program runs a single node ledger in memory: it signs a transfer,
// mines it and reports the sender's balance and the chain validity.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/genesis"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
	"github.com/shub-dab/blockchain/foundation/blockchain/state"
	"github.com/shub-dab/blockchain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("DEMO")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("demo", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Difficulty   uint   `conf:"default:2"`
		MiningReward uint64 `conf:"default:100"`
		Signature    string `conf:"default:recoverable"`
		Key          string `conf:"default:28dfc31500b5ce3aa866f082b4040e8af72497f70381921fd0157ff306134ad5,mask"`
		ToKey        string `conf:"default:8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0,mask"`
		Value        uint64 `conf:"default:10"`
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "proof of work ledger demo",
		},
	}

	const prefix = "DEMO"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	engine, err := signature.Retrieve(cfg.Signature)
	if err != nil {
		return err
	}

	myKey, err := crypto.HexToECDSA(cfg.Key)
	if err != nil {
		return fmt.Errorf("loading key: %w", err)
	}
	toKey, err := crypto.HexToECDSA(cfg.ToKey)
	if err != nil {
		return fmt.Errorf("loading recipient key: %w", err)
	}

	myWallet := database.PublicKeyToAccountID(myKey.PublicKey)
	toWallet := database.PublicKeyToAccountID(toKey.PublicKey)

	gen := genesis.Default()
	gen.Difficulty = cfg.Difficulty
	gen.MiningReward = cfg.MiningReward

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	chain, err := state.New(state.Config{
		Genesis:   gen,
		Engine:    engine,
		EvHandler: ev,
	})
	if err != nil {
		return err
	}
	defer chain.Shutdown()

	tx, err := database.NewTx(myWallet, toWallet, cfg.Value)
	if err != nil {
		return err
	}

	signedTx, err := tx.Sign(engine, myKey)
	if err != nil {
		return err
	}

	if err := chain.AddTransaction(signedTx); err != nil {
		return err
	}

	fmt.Println("\n Starting the miner...")
	block, err := chain.MinePendingTransactions(context.Background(), myWallet)
	if err != nil {
		return err
	}

	fmt.Println("Block mined:", block.Hash)
	fmt.Println("Balance of my wallet is", chain.QueryBalance(myWallet))
	fmt.Println("Is chain valid?", chain.IsChainValid())

	return nil
}
