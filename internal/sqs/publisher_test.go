package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awssqs.SendMessageOutput), args.Error(1)
}

func TestPublisher_PublishSupplyChainMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes serialized message to the queue", func(t *testing.T) {
		client := new(MockSQSClient)
		publisher := NewPublisher(client, "https://sqs.test/queue")

		var sentBody string
		client.On("SendMessage", ctx, mock.MatchedBy(func(input *awssqs.SendMessageInput) bool {
			if input.QueueUrl == nil || *input.QueueUrl != "https://sqs.test/queue" {
				return false
			}
			sentBody = *input.MessageBody
			return true
		})).Return(&awssqs.SendMessageOutput{}, nil)

		err := publisher.PublishSupplyChainMessage(ctx, SupplyChainMessage{
			Action:          ActionRegistered,
			ProductID:       7,
			Name:            "Single Origin Coffee",
			BatchID:         "BATCH-2025-014",
			TransactionHash: "0xabc",
			Actor:           "0xManufacturer",
		})
		require.NoError(t, err)

		var msg SupplyChainMessage
		require.NoError(t, json.Unmarshal([]byte(sentBody), &msg))
		assert.Equal(t, ActionRegistered, msg.Action)
		assert.Equal(t, uint64(7), msg.ProductID)
		assert.Equal(t, "BATCH-2025-014", msg.BatchID)

		client.AssertExpectations(t)
	})

	t.Run("returns error when send fails", func(t *testing.T) {
		client := new(MockSQSClient)
		publisher := NewPublisher(client, "https://sqs.test/queue")

		client.On("SendMessage", ctx, mock.Anything).Return(nil, errors.New("network error"))

		err := publisher.PublishSupplyChainMessage(ctx, SupplyChainMessage{
			Action:  ActionTransferred,
			BatchID: "BATCH-2025-014",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")

		client.AssertExpectations(t)
	})
}
