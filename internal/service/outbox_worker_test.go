package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/repository"
	"github.com/supplyonchain/tracker/internal/sqs"
)

func pendingEvent(t *testing.T, eventType string, data map[string]interface{}) *model.Event {
	t.Helper()
	body, err := json.Marshal(data)
	require.NoError(t, err)
	return &model.Event{
		ID:        uuid.New(),
		EventType: eventType,
		EventData: body,
		Status:    model.EventStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestOutboxWorker_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes pending events and marks them processed", func(t *testing.T) {
		eventsMock := new(MockEventRepository)
		publisherMock := new(MockPublisher)
		worker := NewOutboxWorker(eventsMock, publisherMock, time.Second)

		event := pendingEvent(t, model.EventTypeProductTransferred, map[string]interface{}{
			"product_id":       3,
			"batch_id":         "B-3",
			"transaction_hash": "0xtransfer",
			"actor":            "0xManufacturer",
			"recipient":        "0xWholesaler",
		})

		eventsMock.On("ListPending", ctx, repository.DefaultBatchLimit).Return([]*model.Event{event}, nil)
		publisherMock.On("PublishSupplyChainMessage", ctx, sqs.SupplyChainMessage{
			Action:          sqs.ActionTransferred,
			ProductID:       3,
			BatchID:         "B-3",
			TransactionHash: "0xtransfer",
			Actor:           "0xManufacturer",
			Recipient:       "0xWholesaler",
		}).Return(nil)
		eventsMock.On("UpdateStatus", ctx, event.ID, model.EventStatusProcessed).Return(nil)

		err := worker.processPending(ctx)
		require.NoError(t, err)

		eventsMock.AssertExpectations(t)
		publisherMock.AssertExpectations(t)
	})

	t.Run("registration events use the manufacturer as actor", func(t *testing.T) {
		eventsMock := new(MockEventRepository)
		publisherMock := new(MockPublisher)
		worker := NewOutboxWorker(eventsMock, publisherMock, time.Second)

		event := pendingEvent(t, model.EventTypeProductRegistered, map[string]interface{}{
			"transaction_hash": "0xhash",
			"batch_id":         "B-1",
			"name":             "Single Origin Coffee",
			"manufacturer":     "0xManufacturer",
		})

		eventsMock.On("ListPending", ctx, repository.DefaultBatchLimit).Return([]*model.Event{event}, nil)
		publisherMock.On("PublishSupplyChainMessage", ctx, mock.MatchedBy(func(msg sqs.SupplyChainMessage) bool {
			return msg.Action == sqs.ActionRegistered && msg.Actor == "0xManufacturer"
		})).Return(nil)
		eventsMock.On("UpdateStatus", ctx, event.ID, model.EventStatusProcessed).Return(nil)

		err := worker.processPending(ctx)
		require.NoError(t, err)
	})

	t.Run("failed publish marks the event failed and continues", func(t *testing.T) {
		eventsMock := new(MockEventRepository)
		publisherMock := new(MockPublisher)
		worker := NewOutboxWorker(eventsMock, publisherMock, time.Second)

		bad := pendingEvent(t, model.EventTypeProductRegistered, map[string]interface{}{"batch_id": "B-1"})
		good := pendingEvent(t, model.EventTypeMetadataStored, map[string]interface{}{"batch_id": "B-2"})

		eventsMock.On("ListPending", ctx, repository.DefaultBatchLimit).Return([]*model.Event{bad, good}, nil)
		publisherMock.On("PublishSupplyChainMessage", ctx, mock.MatchedBy(func(msg sqs.SupplyChainMessage) bool {
			return msg.BatchID == "B-1"
		})).Return(errors.New("sqs down"))
		publisherMock.On("PublishSupplyChainMessage", ctx, mock.MatchedBy(func(msg sqs.SupplyChainMessage) bool {
			return msg.BatchID == "B-2"
		})).Return(nil)
		eventsMock.On("UpdateStatus", ctx, bad.ID, model.EventStatusFailed).Return(nil)
		eventsMock.On("UpdateStatus", ctx, good.ID, model.EventStatusProcessed).Return(nil)

		err := worker.processPending(ctx)
		require.NoError(t, err)

		eventsMock.AssertExpectations(t)
	})

	t.Run("unknown event type is marked failed", func(t *testing.T) {
		eventsMock := new(MockEventRepository)
		publisherMock := new(MockPublisher)
		worker := NewOutboxWorker(eventsMock, publisherMock, time.Second)

		event := pendingEvent(t, "something.else", map[string]interface{}{})

		eventsMock.On("ListPending", ctx, repository.DefaultBatchLimit).Return([]*model.Event{event}, nil)
		eventsMock.On("UpdateStatus", ctx, event.ID, model.EventStatusFailed).Return(nil)

		err := worker.processPending(ctx)
		require.NoError(t, err)

		publisherMock.AssertNotCalled(t, "PublishSupplyChainMessage", mock.Anything, mock.Anything)
	})

	t.Run("listing failure surfaces", func(t *testing.T) {
		eventsMock := new(MockEventRepository)
		worker := NewOutboxWorker(eventsMock, new(MockPublisher), time.Second)

		eventsMock.On("ListPending", ctx, repository.DefaultBatchLimit).Return(nil, errors.New("db down"))

		err := worker.processPending(ctx)
		assert.Error(t, err)
	})
}
