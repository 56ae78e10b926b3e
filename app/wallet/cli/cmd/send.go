package cmd

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	v1 "github.com/shub-dab/blockchain/business/web/v1"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
	"github.com/shub-dab/blockchain/foundation/nameservice"
	"github.com/spf13/cobra"
)

var (
	url    string
	to     string
	value  uint64
	engine string
	mine   bool
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		if err := sendWithDetails(privateKey); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account or key name receiving the value.")
	sendCmd.Flags().Uint64VarP(&value, "value", "v", 0, "Value to send.")
	sendCmd.Flags().StringVarP(&engine, "signature", "s", signature.EngineRecoverable, "Signature engine the node validates with.")
	sendCmd.Flags().BoolVarP(&mine, "mine", "m", false, "Ask the node to mine after submitting.")
}

func sendWithDetails(privateKey *ecdsa.PrivateKey) error {
	toID, err := resolveAccount(to)
	if err != nil {
		return err
	}

	eng, err := signature.Retrieve(engine)
	if err != nil {
		return err
	}

	tx, err := database.NewTx(database.PublicKeyToAccountID(privateKey.PublicKey), toID, value)
	if err != nil {
		return err
	}

	signedTx, err := tx.Sign(eng, privateKey)
	if err != nil {
		return err
	}

	data, err := json.Marshal(signedTx)
	if err != nil {
		return err
	}

	if err := post(fmt.Sprintf("%s/v1/tx/submit", url), data); err != nil {
		return err
	}
	fmt.Println("submitted:", signedTx)

	if mine {
		if err := post(fmt.Sprintf("%s/v1/mining/signal", url), nil); err != nil {
			return err
		}
		fmt.Println("mining signaled")
	}

	return nil
}

// resolveAccount accepts either an account or the name of a key file in the
// account path.
func resolveAccount(s string) (database.AccountID, error) {
	if accountID, err := database.ToAccountID(s); err == nil {
		return accountID, nil
	}

	ns, err := nameservice.New(accountPath)
	if err != nil {
		return "", err
	}

	accountID, exists := ns.AccountID(s)
	if !exists {
		return "", fmt.Errorf("unknown account %q", s)
	}

	return accountID, nil
}

func post(url string, data []byte) error {
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er v1.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, er.Error)
	}

	return nil
}
