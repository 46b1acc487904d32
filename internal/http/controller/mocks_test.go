package controller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/supplyonchain/tracker/internal/model"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) CreateProduct(ctx context.Context, name, batchID, wholesaler, retailer string) (string, error) {
	args := m.Called(ctx, name, batchID, wholesaler, retailer)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) TransferOwnership(ctx context.Context, id uint64, newOwner string) (string, error) {
	args := m.Called(ctx, id, newOwner)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) GetProduct(ctx context.Context, id uint64) (*model.ProductRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductRecord), args.Error(1)
}

func (m *MockLedger) GetProductIDByBatchID(ctx context.Context, batchID string) (uint64, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedger) GetProductsByOwner(ctx context.Context, owner string) ([]uint64, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockLedger) GetProductsCreatedBy(ctx context.Context, creator string) ([]uint64, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockLedger) Signer() string {
	args := m.Called()
	return args.String(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, record *model.MetadataRecord) (*model.MetadataRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataRecord), args.Error(1)
}

func (m *MockStore) FindByTransactionHash(ctx context.Context, hash string) (*model.MetadataRecord, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataRecord), args.Error(1)
}

func (m *MockStore) FindByBatchID(ctx context.Context, batchID string) (*model.MetadataRecord, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataRecord), args.Error(1)
}

func (m *MockStore) FindByManufacturer(ctx context.Context, address string) ([]*model.MetadataRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MetadataRecord), args.Error(1)
}
