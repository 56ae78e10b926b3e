package state

import (
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1].Clone()
}

// RetrieveBlocks returns a copy of the chain, starting with the genesis block.
func (s *State) RetrieveBlocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.blocks))
	for i, block := range s.blocks {
		blocks[i] = block.Clone()
	}
	return blocks
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.SignedTx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]database.SignedTx, len(s.pending))
	copy(pending, s.pending)
	return pending
}
