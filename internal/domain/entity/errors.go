package entity

import (
	"errors"
	"fmt"
)

// ErrNoPathExists indicates that both wallets are present in the graph but no
// directed path connects them
var ErrNoPathExists = errors.New("no path exists between the given wallets")

// WalletNotFoundError indicates that an address never appears in the
// transaction graph
type WalletNotFoundError struct {
	Address string
}

func (e *WalletNotFoundError) Error() string {
	return fmt.Sprintf("wallet %s not found in transaction graph", e.Address)
}

// NotMappedError indicates that no entity mapping exists for an address
type NotMappedError struct {
	WalletAddress string
}

func (e *NotMappedError) Error() string {
	return fmt.Sprintf("no entity mapping found for wallet %s", e.WalletAddress)
}

// InvalidRecordError indicates a structurally invalid transfer record. It is
// fatal at load time: a single invalid record aborts graph construction
// because a corrupt dataset invalidates every subsequent query equally.
type InvalidRecordError struct {
	TxID   string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid transfer record %s: %s", e.TxID, e.Reason)
}
