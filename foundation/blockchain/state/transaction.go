package state

import (
	"errors"
	"fmt"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// AddTransaction validates the transaction and adds it to the set of
// pending transactions. Balances are not checked.
func (s *State) AddTransaction(tx database.SignedTx) error {
	if tx.FromID == "" || tx.ToID == "" {
		return database.ErrMalformedTransaction
	}

	if err := tx.Validate(s.engine); err != nil {
		if errors.Is(err, database.ErrMissingSignature) {
			return err
		}
		return fmt.Errorf("cannot add invalid transaction to the chain: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, tx)

	s.evHandler("state: AddTransaction: tx[%s]: pending[%d]", tx, len(s.pending))

	return nil
}
