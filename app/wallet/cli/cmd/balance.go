package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

type info struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type actInfo struct {
	LatestBlock string `json:"latest_block"`
	Uncommitted int    `json:"uncommitted"`
	Accounts    []info `json:"accounts"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	accountID := database.PublicKeyToAccountID(privateKey.PublicKey)
	fmt.Println("For Account:", accountID)

	resp, err := http.Get(fmt.Sprintf("%s/v1/accounts/list/%s", url, accountID))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("status %d", resp.StatusCode)
	}

	var ai actInfo
	if err := json.NewDecoder(resp.Body).Decode(&ai); err != nil {
		log.Fatal(err)
	}

	if len(ai.Accounts) > 0 {
		fmt.Println(ai.Accounts[0].Balance)
	}
}
