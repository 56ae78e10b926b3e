package state

import (
	"fmt"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// IsChainValid verifies the integrity of the blockchain. A tampered chain is
// an expected outcome and is reported as false rather than an error.
func (s *State) IsChainValid() bool {
	return s.ValidateChain() == nil
}

// ValidateChain walks the chain and checks every block after genesis: its
// records must be valid, its stored hash must match its content and it must
// point at the hash of the block before it. The first failure is returned.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 1; i < len(s.blocks); i++ {
		if err := s.blocks[i].ValidateBlock(s.blocks[i-1], s.engine, database.EventHandler(s.evHandler)); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	return nil
}
