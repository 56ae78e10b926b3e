package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlockHash string `json:"prev_block_hash"` // Bitcoin: Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Bitcoin: Time the block was created in unix milliseconds.
	Data          string `json:"data,omitempty"`  // Placeholder payload, only used by the genesis block.
	Nonce         uint64 `json:"nonce"`           // Bitcoin: Value identified to solve the hash solution.
}

// Block represents a group of records batched together and sealed by a hash.
type Block struct {
	Header  BlockHeader
	Records []Record
	Hash    string
}

// NewBlock constructs a block that has not been sealed yet. The hash is
// computed for a nonce of zero.
func NewBlock(timeStamp uint64, prevBlockHash string, data string, records []Record) (Block, error) {
	recs := make([]Record, len(records))
	copy(recs, records)

	nb := Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			TimeStamp:     timeStamp,
			Data:          data,
			Nonce:         0,
		},
		Records: recs,
	}

	hash, err := nb.ComputeHash()
	if err != nil {
		return Block{}, err
	}
	nb.Hash = hash

	return nb, nil
}

// Seal performs the proof of work, returning a new block whose hash has the
// specified number of leading zero hex digits. The search is a linear walk
// over the nonce with no upper bound; the context is the only way to stop
// it early.
func (b Block) Seal(ctx context.Context, difficulty uint, ev EventHandler) (Block, error) {
	ev = ev.safe()
	ev("database: Seal: MINING: started: difficulty[%d]", difficulty)
	defer ev("database: Seal: MINING: completed")

	// Log the records that are a part of this potential block.
	for _, rec := range b.Records {
		ev("database: Seal: MINING: rec[%s]", rec)
	}

	nb := b
	nb.Records = make([]Record, len(b.Records))
	copy(nb.Records, b.Records)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Seal: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: Seal: MINING: CANCELLED")
			return Block{}, ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash, err := nb.ComputeHash()
		if err != nil {
			return Block{}, err
		}

		if !IsHashSolved(difficulty, hash) {
			nb.Header.Nonce++
			continue
		}

		nb.Hash = hash

		ev("database: Seal: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", nb.Header.PrevBlockHash, hash)
		ev("database: Seal: MINING: attempts[%d]", attempts)

		return nb, nil
	}
}

// Clone returns a copy of the block that shares no record storage with the
// original.
func (b Block) Clone() Block {
	nb := b
	if b.Records != nil {
		nb.Records = make([]Record, len(b.Records))
		copy(nb.Records, b.Records)
	}
	return nb
}

// ComputeHash re-derives the hash from the current header and records.
// Records are encoded in order so reordering them changes the hash.
func (b Block) ComputeHash() (string, error) {
	recs := make([]recordFields, len(b.Records))
	for i, rec := range b.Records {
		recs[i] = rec.fields()
	}

	return signature.Hash(struct {
		PrevBlockHash string
		TimeStamp     uint64
		Data          string
		Records       []recordFields
		Nonce         uint64
	}{
		PrevBlockHash: b.Header.PrevBlockHash,
		TimeStamp:     b.Header.TimeStamp,
		Data:          b.Header.Data,
		Records:       recs,
		Nonce:         b.Header.Nonce,
	})
}

// HasValidRecords reports whether every record in the block is valid.
func (b Block) HasValidRecords(engine signature.Engine) bool {
	return b.validateRecords(engine) == nil
}

// ValidateBlock takes a block and validates it against the block before it
// in the chain. The genesis block is never validated this way.
func (b Block) ValidateBlock(previousBlock Block, engine signature.Engine, ev EventHandler) error {
	ev = ev.safe()
	ev("database: ValidateBlock: validate: blk[%s]: check: records are valid", b.Hash)

	if err := b.validateRecords(engine); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBlock, err)
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: block hash matches content", b.Hash)

	hash, err := b.ComputeHash()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBlock, err)
	}

	if b.Hash != hash {
		return fmt.Errorf("%w: stored hash doesn't match content, got %s, exp %s", ErrInvalidBlock, b.Hash, hash)
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: parent hash does match parent block", b.Hash)

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("%w: parent block hash doesn't match our known parent, got %s, exp %s", ErrInvalidBlock, b.Header.PrevBlockHash, previousBlock.Hash)
	}

	return nil
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	if len(hash) != 64 || difficulty > 64 {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == int(difficulty)
}

// =============================================================================

func (b Block) validateRecords(engine signature.Engine) error {
	for i, rec := range b.Records {
		if err := rec.Validate(engine); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return nil
}
