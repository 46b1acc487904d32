package ledger

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/supplyonchain/tracker/internal/model"
)

// contractABI describes the supply-chain contract surface this service uses.
const contractABI = `[
  {"type":"function","name":"createProduct","stateMutability":"nonpayable","inputs":[{"name":"_name","type":"string"},{"name":"_batchId","type":"string"},{"name":"_wholesaler","type":"address"},{"name":"_retailer","type":"address"}],"outputs":[]},
  {"type":"function","name":"transferOwnership","stateMutability":"nonpayable","inputs":[{"name":"_id","type":"uint256"},{"name":"_newOwner","type":"address"}],"outputs":[]},
  {"type":"function","name":"getProduct","stateMutability":"view","inputs":[{"name":"_id","type":"uint256"}],"outputs":[{"name":"","type":"tuple","components":[{"name":"id","type":"uint256"},{"name":"name","type":"string"},{"name":"batchId","type":"string"},{"name":"manufacturer","type":"address"},{"name":"assignedWholesaler","type":"address"},{"name":"assignedRetailer","type":"address"},{"name":"currentOwner","type":"address"},{"name":"status","type":"uint8"},{"name":"timestamp","type":"uint256"},{"name":"exists","type":"bool"}]}]},
  {"type":"function","name":"getProductIdByBatchId","stateMutability":"view","inputs":[{"name":"_batchId","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getProductsByOwner","stateMutability":"view","inputs":[{"name":"_owner","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"getProductsCreatedBy","stateMutability":"view","inputs":[{"name":"_creator","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]}
]`

// rawProduct matches the getProduct return tuple field-for-field.
type rawProduct struct {
	Id                 *big.Int
	Name               string
	BatchId            string
	Manufacturer       common.Address
	AssignedWholesaler common.Address
	AssignedRetailer   common.Address
	CurrentOwner       common.Address
	Status             uint8
	Timestamp          *big.Int
	Exists             bool
}

// EthereumClient is the production Client implementation, talking JSON-RPC
// to an Ethereum node. Reads work without a key; writes require one.
type EthereumClient struct {
	contract *bind.BoundContract
	auth     *bind.TransactOpts
}

var _ Client = (*EthereumClient)(nil)

// Dial connects to the node at rpcURL and binds the contract at
// contractAddr. privateKeyHex may be empty, yielding a read-only client.
func Dial(ctx context.Context, rpcURL, contractAddr, privateKeyHex string, chainID int64) (*EthereumClient, error) {
	if !common.IsHexAddress(contractAddr) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddr)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ethereum node: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	ec := &EthereumClient{
		contract: bind.NewBoundContract(common.HexToAddress(contractAddr), parsed, client, client, client),
	}

	if privateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse signing key: %w", err)
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
		if err != nil {
			return nil, fmt.Errorf("failed to build transactor: %w", err)
		}
		ec.auth = auth
	}

	return ec, nil
}

// Signer returns the configured signing address, or "" when read-only.
func (c *EthereumClient) Signer() string {
	if c.auth == nil {
		return ""
	}
	return c.auth.From.Hex()
}

// CreateProduct submits a createProduct transaction.
func (c *EthereumClient) CreateProduct(ctx context.Context, name, batchID, wholesaler, retailer string) (string, error) {
	if c.auth == nil {
		return "", ErrReadOnly
	}
	if !common.IsHexAddress(wholesaler) {
		return "", fmt.Errorf("invalid wholesaler address %q", wholesaler)
	}
	if !common.IsHexAddress(retailer) {
		return "", fmt.Errorf("invalid retailer address %q", retailer)
	}

	opts := *c.auth
	opts.Context = ctx
	tx, err := c.contract.Transact(&opts, "createProduct", name, batchID,
		common.HexToAddress(wholesaler), common.HexToAddress(retailer))
	if err != nil {
		return "", fmt.Errorf("createProduct transaction failed: %w", err)
	}
	return tx.Hash().Hex(), nil
}

// TransferOwnership submits a transferOwnership transaction.
func (c *EthereumClient) TransferOwnership(ctx context.Context, id uint64, newOwner string) (string, error) {
	if c.auth == nil {
		return "", ErrReadOnly
	}
	if !common.IsHexAddress(newOwner) {
		return "", fmt.Errorf("invalid recipient address %q", newOwner)
	}

	opts := *c.auth
	opts.Context = ctx
	tx, err := c.contract.Transact(&opts, "transferOwnership",
		new(big.Int).SetUint64(id), common.HexToAddress(newOwner))
	if err != nil {
		return "", fmt.Errorf("transferOwnership transaction failed: %w", err)
	}
	return tx.Hash().Hex(), nil
}

// GetProduct fetches the on-chain record for id.
func (c *EthereumClient) GetProduct(ctx context.Context, id uint64) (*model.ProductRecord, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProduct", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("getProduct call failed: %w", err)
	}

	raw := *abi.ConvertType(out[0], new(rawProduct)).(*rawProduct)
	return toProductRecord(raw)
}

// GetProductIDByBatchID returns the id registered under batchID, 0 when absent.
func (c *EthereumClient) GetProductIDByBatchID(ctx context.Context, batchID string) (uint64, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProductIdByBatchId", batchID)
	if err != nil {
		return 0, fmt.Errorf("getProductIdByBatchId call failed: %w", err)
	}
	return narrowUint64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int))
}

// GetProductsByOwner lists ids currently owned by the address.
func (c *EthereumClient) GetProductsByOwner(ctx context.Context, owner string) ([]uint64, error) {
	return c.callIDList(ctx, "getProductsByOwner", owner)
}

// GetProductsCreatedBy lists ids originally created by the address.
func (c *EthereumClient) GetProductsCreatedBy(ctx context.Context, creator string) ([]uint64, error) {
	return c.callIDList(ctx, "getProductsCreatedBy", creator)
}

func (c *EthereumClient) callIDList(ctx context.Context, method, address string) ([]uint64, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}

	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, common.HexToAddress(address))
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}

	rawIDs := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)
	ids := make([]uint64, 0, len(rawIDs))
	for _, rawID := range rawIDs {
		id, err := narrowUint64(rawID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// toProductRecord narrows the raw tuple into the local record type. Any
// value outside the local field width fails loudly instead of truncating.
func toProductRecord(raw rawProduct) (*model.ProductRecord, error) {
	id, err := narrowUint64(raw.Id)
	if err != nil {
		return nil, fmt.Errorf("product id: %w", err)
	}
	ts, err := narrowInt64(raw.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("product timestamp: %w", err)
	}
	if raw.Status > uint8(model.StatusDelivered) {
		return nil, fmt.Errorf("%w: status %d", ErrValueOutOfRange, raw.Status)
	}

	return &model.ProductRecord{
		ID:                 id,
		Name:               raw.Name,
		BatchID:            raw.BatchId,
		Manufacturer:       raw.Manufacturer.Hex(),
		AssignedWholesaler: raw.AssignedWholesaler.Hex(),
		AssignedRetailer:   raw.AssignedRetailer.Hex(),
		CurrentOwner:       raw.CurrentOwner.Hex(),
		Status:             model.ProductStatus(raw.Status),
		Timestamp:          ts,
		Exists:             raw.Exists,
	}, nil
}

func narrowUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: nil value", ErrValueOutOfRange)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrValueOutOfRange, v.String())
	}
	return v.Uint64(), nil
}

func narrowInt64(v *big.Int) (int64, error) {
	u, err := narrowUint64(v)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d", ErrValueOutOfRange, u)
	}
	return int64(u), nil
}
