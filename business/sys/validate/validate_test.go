package validate_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/business/sys/validate"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type submitTx struct {
	From  string `json:"from" validate:"required,account"`
	To    string `json:"to" validate:"required,account"`
	Value uint64 `json:"value"`
}

func Test_Check(t *testing.T) {
	pk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	accountID := string(database.PublicKeyToAccountID(pk.PublicKey))

	t.Log("Given the need to validate request models.")
	{
		if err := validate.Check(submitTx{From: accountID, To: accountID, Value: 10}); err != nil {
			t.Fatalf("\t%s\tShould accept a valid model: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a valid model.", success)

		err := validate.Check(submitTx{From: "0x1234", Value: 10})
		if !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould return field errors: %v", failed, err)
		}
		t.Logf("\t%s\tShould return field errors.", success)

		fields := validate.GetFieldErrors(err).Fields()
		if fields["from"] != "from must be a valid account" {
			t.Fatalf("\t%s\tShould translate the account error: %v", failed, fields)
		}
		if _, exists := fields["to"]; !exists {
			t.Fatalf("\t%s\tShould report the missing field by its json name: %v", failed, fields)
		}
		t.Logf("\t%s\tShould report errors by json name.", success)
	}
}
