package database

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shub-dab/blockchain/foundation/blockchain/signature"
)

// Record is a value transfer as it's recorded inside a block. The set of
// records is closed: a record is either a SignedTx moving value between two
// accounts or a MintTx created by the chain to pay the miner.
type Record interface {
	Validate(engine signature.Engine) error
	Sender() (AccountID, bool)
	Recipient() AccountID
	Amount() uint64
	Time() uint64

	fields() recordFields
}

// Record kinds used in the canonical encoding.
const (
	kindTransfer uint8 = iota
	kindMint
)

// recordFields is the canonical form of a record used for block hashing.
type recordFields struct {
	Kind      uint8
	From      string
	To        string
	Value     uint64
	TimeStamp uint64
	Signature []byte
}

// =============================================================================

// Tx is the transactional information between two parties before
// it is signed.
type Tx struct {
	FromID    AccountID `json:"from"`      // Account sending the value.
	ToID      AccountID `json:"to"`        // Account receiving the value.
	Value     uint64    `json:"value"`     // Monetary value moved by this transaction.
	TimeStamp uint64    `json:"timestamp"` // Unix milliseconds when the transaction was created.
}

// NewTx constructs a new transaction stamped with the current time.
func NewTx(fromID AccountID, toID AccountID, value uint64) (Tx, error) {
	if fromID == "" || toID == "" {
		return Tx{}, ErrMalformedTransaction
	}

	if value > MaxValue {
		return Tx{}, fmt.Errorf("%w: value %d exceeds %d", ErrMalformedTransaction, value, MaxValue)
	}

	tx := Tx{
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}

	return tx, nil
}

// Digest returns the digest of the transaction that gets signed.
func (tx Tx) Digest() ([]byte, error) {
	return signature.Digest(struct {
		From      string
		To        string
		Value     uint64
		TimeStamp uint64
	}{
		From:      string(tx.FromID),
		To:        string(tx.ToID),
		Value:     tx.Value,
		TimeStamp: tx.TimeStamp,
	})
}

// Sign uses the specified private key to sign the transaction. Only the
// private key of the from account can sign.
func (tx Tx) Sign(engine signature.Engine, privateKey *ecdsa.PrivateKey) (SignedTx, error) {
	if privateKey == nil {
		return SignedTx{}, signature.ErrMalformedKey
	}

	if PublicKeyToAccountID(privateKey.PublicKey) != tx.FromID {
		return SignedTx{}, ErrUnauthorizedSigner
	}

	digest, err := tx.Digest()
	if err != nil {
		return SignedTx{}, err
	}

	sig, err := engine.Sign(digest, privateKey)
	if err != nil {
		return SignedTx{}, fmt.Errorf("signing transaction: %w", err)
	}

	signedTx := SignedTx{
		Tx:        tx,
		Signature: sig,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how clients like
// a wallet provide transactions for inclusion into the blockchain.
type SignedTx struct {
	Tx
	Signature hexutil.Bytes `json:"sig"`
}

// Validate verifies the transaction has a signature produced by the private
// key of the from account over this exact transaction. Both accounts must be
// in their canonical form since balances match accounts as strings.
func (tx SignedTx) Validate(engine signature.Engine) error {
	if len(tx.Signature) == 0 {
		return ErrMissingSignature
	}

	if !tx.FromID.IsAccountID() || !tx.ToID.IsAccountID() {
		return fmt.Errorf("%w: accounts must be canonical", ErrMalformedTransaction)
	}

	if tx.Value > MaxValue {
		return fmt.Errorf("%w: value %d exceeds %d", ErrMalformedTransaction, tx.Value, MaxValue)
	}

	publicKey, err := tx.FromID.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	digest, err := tx.Digest()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if !engine.Verify(publicKey, digest, tx.Signature) {
		return ErrInvalidSignature
	}

	return nil
}

// Sender returns the from account.
func (tx SignedTx) Sender() (AccountID, bool) {
	return tx.FromID, true
}

// Recipient returns the to account.
func (tx SignedTx) Recipient() AccountID {
	return tx.ToID
}

// Amount returns the value being moved.
func (tx SignedTx) Amount() uint64 {
	return tx.Value
}

// Time returns the time the transaction was created.
func (tx SignedTx) Time() uint64 {
	return tx.TimeStamp
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	return fmt.Sprintf("%s->%s:%d", short(tx.FromID), short(tx.ToID), tx.Value)
}

func (tx SignedTx) fields() recordFields {
	return recordFields{
		Kind:      kindTransfer,
		From:      string(tx.FromID),
		To:        string(tx.ToID),
		Value:     tx.Value,
		TimeStamp: tx.TimeStamp,
		Signature: tx.Signature,
	}
}

// =============================================================================

// MintTx is value created by the chain itself, used to pay the mining
// reward. It has no sender and carries no signature.
type MintTx struct {
	ToID      AccountID `json:"to"`
	Value     uint64    `json:"value"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewMintTx constructs a mint paying the value to the specified account.
func NewMintTx(toID AccountID, value uint64) MintTx {
	return MintTx{
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// Validate always succeeds since the chain constructs mints itself.
func (MintTx) Validate(signature.Engine) error {
	return nil
}

// Sender reports there is no sender for minted value.
func (MintTx) Sender() (AccountID, bool) {
	return "", false
}

// Recipient returns the to account.
func (tx MintTx) Recipient() AccountID {
	return tx.ToID
}

// Amount returns the value being minted.
func (tx MintTx) Amount() uint64 {
	return tx.Value
}

// Time returns the time the mint was created.
func (tx MintTx) Time() uint64 {
	return tx.TimeStamp
}

// String implements the fmt.Stringer interface for logging.
func (tx MintTx) String() string {
	return fmt.Sprintf("mint->%s:%d", short(tx.ToID), tx.Value)
}

func (tx MintTx) fields() recordFields {
	return recordFields{
		Kind:      kindMint,
		To:        string(tx.ToID),
		Value:     tx.Value,
		TimeStamp: tx.TimeStamp,
	}
}

// =============================================================================

// short trims an account for log output.
func short(a AccountID) string {
	const size = 10
	if len(a) <= 2*size {
		return string(a)
	}

	return string(a[:size]) + ".." + string(a[len(a)-size:])
}
