package state

import (
	"math"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// QueryBalance replays every record in every block and returns the balance
// for the specified account. Balances can go negative since sending value
// doesn't require funds.
func (s *State) QueryBalance(accountID database.AccountID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var balance int64
	for _, block := range s.blocks {
		for _, rec := range block.Records {
			if from, ok := rec.Sender(); ok && from == accountID {
				balance = debit(balance, rec.Amount())
			}

			if rec.Recipient() == accountID {
				balance = credit(balance, rec.Amount())
			}
		}
	}

	return balance
}

// QueryBalances replays every record in every block and returns the balance
// of every account that has transacted on the chain.
func (s *State) QueryBalances() map[database.AccountID]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make(map[database.AccountID]int64)
	for _, block := range s.blocks {
		for _, rec := range block.Records {
			if from, ok := rec.Sender(); ok {
				balances[from] = debit(balances[from], rec.Amount())
			}
			balances[rec.Recipient()] = credit(balances[rec.Recipient()], rec.Amount())
		}
	}

	return balances
}

// QueryMempoolLength returns the current number of pending transactions.
func (s *State) QueryMempoolLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.pending)
}

// QueryBlocksByAccount returns the set of blocks with a record for the
// account. If the account is empty, all mined blocks are returned.
func (s *State) QueryBlocksByAccount(accountID database.AccountID) []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []database.Block
	for _, block := range s.blocks[1:] {
		for _, rec := range block.Records {
			from, _ := rec.Sender()
			if accountID == "" || from == accountID || rec.Recipient() == accountID {
				out = append(out, block.Clone())
				break
			}
		}
	}

	return out
}

// =============================================================================

// credit adds the amount to the balance, holding at math.MaxInt64 instead of
// wrapping. Amounts never exceed database.MaxValue.
func credit(balance int64, amount uint64) int64 {
	if balance > 0 && int64(amount) > math.MaxInt64-balance {
		return math.MaxInt64
	}
	return balance + int64(amount)
}

// debit subtracts the amount from the balance, holding at math.MinInt64
// instead of wrapping.
func debit(balance int64, amount uint64) int64 {
	if balance < 0 && int64(amount) > balance-math.MinInt64 {
		return math.MinInt64
	}
	return balance - int64(amount)
}
