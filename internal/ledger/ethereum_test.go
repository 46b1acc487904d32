package ledger

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplyonchain/tracker/internal/model"
)

func TestContractABIParses(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	require.NoError(t, err)

	for _, method := range []string{
		"createProduct", "transferOwnership", "getProduct",
		"getProductIdByBatchId", "getProductsByOwner", "getProductsCreatedBy",
	} {
		_, ok := parsed.Methods[method]
		assert.True(t, ok, "missing method %s", method)
	}
}

func TestGetProductTupleRoundTrip(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	require.NoError(t, err)
	method := parsed.Methods["getProduct"]

	in := rawProduct{
		Id:                 big.NewInt(42),
		Name:               "Air Jordan",
		BatchId:            "BATCH-2025-001",
		Manufacturer:       common.HexToAddress("0x1111111111111111111111111111111111111111"),
		AssignedWholesaler: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		AssignedRetailer:   common.HexToAddress("0x3333333333333333333333333333333333333333"),
		CurrentOwner:       common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Status:             uint8(model.StatusInTransit),
		Timestamp:          big.NewInt(1735000000),
		Exists:             true,
	}

	packed, err := method.Outputs.Pack(in)
	require.NoError(t, err)

	out, err := method.Outputs.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 1)

	raw := *abi.ConvertType(out[0], new(rawProduct)).(*rawProduct)
	record, err := toProductRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), record.ID)
	assert.Equal(t, "Air Jordan", record.Name)
	assert.Equal(t, "BATCH-2025-001", record.BatchID)
	assert.Equal(t, model.StatusInTransit, record.Status)
	assert.Equal(t, int64(1735000000), record.Timestamp)
	assert.Equal(t, record.Manufacturer, record.CurrentOwner)
	assert.True(t, record.Exists)
}

func TestToProductRecord_NotFoundSentinel(t *testing.T) {
	// The contract returns an all-zero tuple for unknown ids; only the
	// exists flag tells the two cases apart.
	record, err := toProductRecord(rawProduct{
		Id:        big.NewInt(0),
		Timestamp: big.NewInt(0),
	})
	require.NoError(t, err)
	assert.False(t, record.Exists)
	assert.Zero(t, record.ID)
}

func TestToProductRecord_StatusOutOfRange(t *testing.T) {
	_, err := toProductRecord(rawProduct{
		Id:        big.NewInt(1),
		Timestamp: big.NewInt(1),
		Status:    7,
		Exists:    true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestNarrowUint64(t *testing.T) {
	tests := []struct {
		name    string
		value   *big.Int
		want    uint64
		wantErr bool
	}{
		{"small value", big.NewInt(7), 7, false},
		{"max uint64", new(big.Int).SetUint64(math.MaxUint64), math.MaxUint64, false},
		{"overflow", new(big.Int).Lsh(big.NewInt(1), 64), 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := narrowUint64(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValueOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNarrowInt64(t *testing.T) {
	got, err := narrowInt64(big.NewInt(123456789))
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), got)

	_, err = narrowInt64(new(big.Int).SetUint64(math.MaxUint64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}
