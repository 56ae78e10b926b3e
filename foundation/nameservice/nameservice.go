// Package nameservice reads the zblock/accounts folder and creates a name
// service lookup for the accounts whose keys are stored there.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shub-dab/blockchain/foundation/blockchain/database"
)

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	names    map[database.AccountID]string
	accounts map[string]database.AccountID
}

// New constructs a name service with the accounts for every .ecdsa key file
// found under the root folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		names:    make(map[database.AccountID]string),
		accounts: make(map[string]database.AccountID),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != ".ecdsa" {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		accountID := database.PublicKeyToAccountID(privateKey.PublicKey)
		name := strings.TrimSuffix(path.Base(fileName), ".ecdsa")

		ns.names[accountID] = name
		ns.accounts[name] = accountID

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account. The account itself is
// returned when there is no name for it.
func (ns *NameService) Lookup(accountID database.AccountID) string {
	name, exists := ns.names[accountID]
	if !exists {
		return string(accountID)
	}
	return name
}

// AccountID returns the account registered under the name.
func (ns *NameService) AccountID(name string) (database.AccountID, bool) {
	accountID, exists := ns.accounts[name]
	return accountID, exists
}

// Copy returns a copy of the map of accounts and names.
func (ns *NameService) Copy() map[database.AccountID]string {
	cpy := make(map[database.AccountID]string, len(ns.names))
	for accountID, name := range ns.names {
		cpy[accountID] = name
	}
	return cpy
}
