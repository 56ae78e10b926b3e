package public

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// submitTx is the payload for submitting a signed transaction.
type submitTx struct {
	From      string        `json:"from" validate:"required,account"`
	To        string        `json:"to" validate:"required,account"`
	Value     uint64        `json:"value" validate:"lte=9223372036854775807"`
	TimeStamp uint64        `json:"timestamp" validate:"required"`
	Sig       hexutil.Bytes `json:"sig"`
}

func (stx submitTx) toSignedTx() database.SignedTx {
	return database.SignedTx{
		Tx: database.Tx{
			FromID:    database.AccountID(stx.From),
			ToID:      database.AccountID(stx.To),
			Value:     stx.Value,
			TimeStamp: stx.TimeStamp,
		},
		Signature: stx.Sig,
	}
}

type info struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance int64              `json:"balance"`
}

type actInfo struct {
	LatestBlock string `json:"latest_block"`
	Uncommitted int    `json:"uncommitted"`
	Accounts    []info `json:"accounts"`
}

type tx struct {
	Kind      string             `json:"kind"`
	From      database.AccountID `json:"from,omitempty"`
	FromName  string             `json:"from_name,omitempty"`
	To        database.AccountID `json:"to"`
	ToName    string             `json:"to_name"`
	Value     uint64             `json:"value"`
	TimeStamp uint64             `json:"timestamp"`
	Sig       string             `json:"sig,omitempty"`
}

type block struct {
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	Data          string `json:"data,omitempty"`
	Nonce         uint64 `json:"nonce"`
	Hash          string `json:"hash"`
	Records       []tx   `json:"records"`
}

type validity struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
