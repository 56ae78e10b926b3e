// Package genesis maintains access to the genesis parameters.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default values used when the genesis file doesn't override them.
const (
	DefaultPayload      = "Genesis Block"
	DefaultPrevHash     = "0"
	DefaultDifficulty   = 2
	DefaultMiningReward = 100
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`          // Timestamp of the genesis block.
	Payload      string    `json:"payload"`       // Placeholder data carried by the genesis block.
	PrevHash     string    `json:"prev_hash"`     // Sentinel previous hash of the genesis block.
	Difficulty   uint      `json:"difficulty"`    // How difficult it needs to be to solve the work problem.
	MiningReward uint64    `json:"mining_reward"` // Reward for mining a block.
}

// Default returns the genesis parameters the chain starts with.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2020, time.August, 1, 0, 0, 0, 0, time.UTC),
		Payload:      DefaultPayload,
		PrevHash:     DefaultPrevHash,
		Difficulty:   DefaultDifficulty,
		MiningReward: DefaultMiningReward,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields that are not present in
// the file keep their default value.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	return genesis, nil
}
