// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/genesis"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
)

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the blockchain.
type Config struct {
	Genesis   genesis.Genesis
	Engine    signature.Engine
	EvHandler EventHandler
}

// State manages the blockchain: the chain of blocks and the set of
// transactions waiting to be mined.
type State struct {
	mu      sync.RWMutex
	mining  sync.Mutex
	blocks  []database.Block
	pending []database.SignedTx

	genesis   genesis.Genesis
	engine    signature.Engine
	evHandler EventHandler

	Worker Worker
}

// New constructs a new blockchain holding only the genesis block.
func New(cfg Config) (*State, error) {
	if cfg.Engine == nil {
		return nil, errors.New("signature engine is required")
	}

	if cfg.Genesis.MiningReward > database.MaxValue {
		return nil, fmt.Errorf("mining reward %d exceeds %d", cfg.Genesis.MiningReward, database.MaxValue)
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The genesis block is trusted by construction and carries no records.
	gen := cfg.Genesis
	genesisBlock, err := database.NewBlock(uint64(gen.Date.UTC().UnixMilli()), gen.PrevHash, gen.Payload, nil)
	if err != nil {
		return nil, err
	}

	ev("state: New: genesis block[%s]", genesisBlock.Hash)

	state := State{
		blocks:    []database.Block{genesisBlock},
		genesis:   gen,
		engine:    cfg.Engine,
		evHandler: ev,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running.

	return &state, nil
}

// Shutdown cleanly brings the background work down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// Engine returns the signature engine the chain validates with.
func (s *State) Engine() signature.Engine {
	return s.engine
}

// now returns the current time in unix milliseconds.
func now() uint64 {
	return uint64(time.Now().UTC().UnixMilli())
}
