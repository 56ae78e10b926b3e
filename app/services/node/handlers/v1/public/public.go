// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shub-dab/blockchain/business/sys/validate"
	v1 "github.com/shub-dab/blockchain/business/web/v1"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
	"github.com/shub-dab/blockchain/foundation/blockchain/state"
	"github.com/shub-dab/blockchain/foundation/events"
	"github.com/shub-dab/blockchain/foundation/nameservice"
	"github.com/shub-dab/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the blockchain.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the blockchain or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction validates a signed transaction and adds it to the set
// of pending transactions.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var stx submitTx
	if err := web.Decode(r, &stx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := validate.Check(stx); err != nil {
		return err
	}

	signedTx := stx.toSignedTx()

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", signedTx, "to", h.NS.Lookup(signedTx.ToID), "value", signedTx.Value)
	if err := h.State.AddTransaction(signedTx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to pending",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining asks the worker to mine the pending transactions.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker == nil {
		return v1.NewRequestError(errors.New("mining is not enabled on this node"), http.StatusServiceUnavailable)
	}

	h.State.Worker.SignalStartMining()

	resp := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{
		Status:  "mining signaled",
		Pending: h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	mempool := h.State.RetrieveMempool()

	trans := make([]tx, len(mempool))
	for i, tran := range mempool {
		trans[i] = h.toTx(tran)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Accounts returns the replayed balances for all accounts or the one
// specified.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	balances := make(map[database.AccountID]int64)
	switch account {
	case "":
		balances = h.State.QueryBalances()

	default:
		accountID, err := database.ToAccountID(account)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		balances[accountID] = h.State.QueryBalance(accountID)
	}

	acts := make([]info, 0, len(balances))
	for accountID, balance := range balances {
		act := info{
			Account: accountID,
			Name:    h.NS.Lookup(accountID),
			Balance: balance,
		}
		acts = append(acts, act)
	}

	ai := actInfo{
		LatestBlock: h.State.RetrieveLatestBlock().Hash,
		Uncommitted: h.State.QueryMempoolLength(),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// BlocksByAccount returns all the mined blocks, or the ones with a record
// for the specified account.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accountID database.AccountID
	if account := web.Param(r, "account"); account != "" {
		var err error
		accountID, err = database.ToAccountID(account)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
	}

	dbBlocks := h.State.QueryBlocksByAccount(accountID)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blocks := make([]block, len(dbBlocks))
	for j, blk := range dbBlocks {
		trans := make([]tx, len(blk.Records))
		for i, rec := range blk.Records {
			trans[i] = h.toTx(rec)
		}

		blocks[j] = block{
			PrevBlockHash: blk.Header.PrevBlockHash,
			TimeStamp:     blk.Header.TimeStamp,
			Data:          blk.Header.Data,
			Nonce:         blk.Header.Nonce,
			Hash:          blk.Hash,
			Records:       trans,
		}
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// ValidateChain reports whether the chain is intact.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var resp validity
	if err := h.State.ValidateChain(); err != nil {
		resp.Error = err.Error()
	}
	resp.Valid = resp.Error == ""

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

func (h Handlers) toTx(rec database.Record) tx {
	t := tx{
		Kind:      "mint",
		To:        rec.Recipient(),
		ToName:    h.NS.Lookup(rec.Recipient()),
		Value:     rec.Amount(),
		TimeStamp: rec.Time(),
	}

	if from, ok := rec.Sender(); ok {
		t.Kind = "transfer"
		t.From = from
		t.FromName = h.NS.Lookup(from)
	}

	if signedTx, ok := rec.(database.SignedTx); ok {
		t.Sig = signedTx.Signature.String()
	}

	return t
}
