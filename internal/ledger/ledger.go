// Package ledger wraps the external supply-chain smart contract. The
// contract owns product existence, ownership and status; this package only
// issues reads and signed writes against it.
package ledger

import (
	"context"
	"errors"

	"github.com/supplyonchain/tracker/internal/model"
)

var (
	// ErrReadOnly is returned by state-changing calls when the client was
	// built without a signing key.
	ErrReadOnly = errors.New("ledger client is read-only: no signing key configured")

	// ErrValueOutOfRange is returned when a ledger integer does not fit the
	// local field width. The contract declares uint256 everywhere, so in
	// practice this indicates corrupted data or a programming error, never
	// an expected condition.
	ErrValueOutOfRange = errors.New("ledger value out of integer range")
)

// Client is the capability surface of the supply-chain contract.
type Client interface {
	// CreateProduct registers a new product and returns the creation
	// transaction hash. The ledger assigns the numeric id asynchronously,
	// when the transaction is mined.
	CreateProduct(ctx context.Context, name, batchID, wholesaler, retailer string) (txHash string, err error)

	// TransferOwnership moves the product to newOwner and returns the
	// transaction hash. The contract enforces the status sequence.
	TransferOwnership(ctx context.Context, id uint64, newOwner string) (txHash string, err error)

	// GetProduct fetches the full on-chain record. A record with
	// Exists == false means the id is unknown to the ledger.
	GetProduct(ctx context.Context, id uint64) (*model.ProductRecord, error)

	// GetProductIDByBatchID returns the id registered under batchID.
	// Zero means "not found": the contract's id counter starts at 1.
	GetProductIDByBatchID(ctx context.Context, batchID string) (uint64, error)

	// GetProductsByOwner lists ids currently owned by the address.
	GetProductsByOwner(ctx context.Context, owner string) ([]uint64, error)

	// GetProductsCreatedBy lists ids originally created by the address.
	GetProductsCreatedBy(ctx context.Context, creator string) ([]uint64, error)

	// Signer returns the address of the configured signing key, or the
	// empty string when the client is read-only.
	Signer() string
}
