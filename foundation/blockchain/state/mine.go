package state

import (
	"context"
	"fmt"

	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// MinePendingTransactions packages the pending transactions plus the mining
// reward into a new block, performs the proof of work and appends the block
// to the chain. The context can be used to cancel the proof of work, in which
// case nothing changes.
func (s *State) MinePendingTransactions(ctx context.Context, rewardID database.AccountID) (database.Block, error) {
	if rewardID == "" {
		return database.Block{}, fmt.Errorf("reward account: %w", database.ErrMalformedTransaction)
	}

	// Only one block can be mined at a time, so the latest block can't
	// change underneath the proof of work.
	s.mining.Lock()
	defer s.mining.Unlock()

	s.evHandler("state: MinePendingTransactions: MINING: snapshot pending transactions")

	var latest database.Block
	var pending []database.SignedTx
	s.mu.RLock()
	{
		latest = s.blocks[len(s.blocks)-1]
		pending = make([]database.SignedTx, len(s.pending))
		copy(pending, s.pending)
	}
	s.mu.RUnlock()

	// The mining reward is added after the pending transactions.
	records := make([]database.Record, 0, len(pending)+1)
	for _, tx := range pending {
		records = append(records, tx)
	}
	records = append(records, database.NewMintTx(rewardID, s.genesis.MiningReward))

	nb, err := database.NewBlock(now(), latest.Hash, "", records)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MinePendingTransactions: MINING: perform POW: records[%d]", len(records))

	// This can be cancelled.
	block, err := nb.Seal(ctx, s.genesis.Difficulty, database.EventHandler(s.evHandler))
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MinePendingTransactions: MINING: update local state")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = append(s.blocks, block)

	// Transactions that arrived while sealing stay pending.
	s.pending = append([]database.SignedTx(nil), s.pending[len(pending):]...)

	s.evHandler("viewer: block mined: blk[%s]: records[%d]: pending[%d]", block.Hash, len(block.Records), len(s.pending))

	return block.Clone(), nil
}
