package main

import (
	"os"
	"path/filepath"
	"testing"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_LoadGenesis(t *testing.T) {
	t.Log("Given the need to pick the genesis parameters for a node.")
	{
		gen, err := loadGenesis("", 4, 250)
		if err != nil {
			t.Fatalf("\t%s\tShould build the genesis without a file: %v", failed, err)
		}
		if gen.Difficulty != 4 || gen.MiningReward != 250 {
			t.Fatalf("\t%s\tShould use the configured difficulty and reward: %+v", failed, gen)
		}
		t.Logf("\t%s\tShould use the configured difficulty and reward.", success)

		path := filepath.Join(t.TempDir(), "genesis.json")
		if err := os.WriteFile(path, []byte(`{"difficulty": 3, "mining_reward": 70}`), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write the genesis file: %v", failed, err)
		}

		gen, err = loadGenesis(path, 4, 250)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the genesis file: %v", failed, err)
		}
		if gen.Difficulty != 3 || gen.MiningReward != 70 {
			t.Fatalf("\t%s\tShould take the difficulty and reward from the file: %+v", failed, gen)
		}
		t.Logf("\t%s\tShould take the difficulty and reward from the file.", success)

		if _, err := loadGenesis(filepath.Join(t.TempDir(), "missing.json"), 4, 250); err == nil {
			t.Fatalf("\t%s\tShould fail for a missing genesis file.", failed)
		}
		t.Logf("\t%s\tShould fail for a missing genesis file.", success)
	}
}
