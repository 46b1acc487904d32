package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// PublisherAPI defines the SQS operations used by Publisher.
type PublisherAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher handles publishing supply-chain messages to AWS SQS.
type Publisher struct {
	client   PublisherAPI
	queueURL string
}

// NewPublisher creates a new SQS Publisher with the given client and queue URL.
func NewPublisher(client PublisherAPI, queueURL string) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
	}
}

// SupplyChainMessage describes a product lifecycle occurrence.
type SupplyChainMessage struct {
	Action          string `json:"action"`
	ProductID       uint64 `json:"product_id,omitempty"`
	Name            string `json:"name,omitempty"`
	BatchID         string `json:"batch_id"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Actor           string `json:"actor,omitempty"`
	Recipient       string `json:"recipient,omitempty"`
}

// Message actions published on the supply-chain queue.
const (
	ActionRegistered     = "registered"
	ActionTransferred    = "transferred"
	ActionMetadataStored = "metadata_stored"
)

// PublishSupplyChainMessage publishes a message to the SQS queue.
func (p *Publisher) PublishSupplyChainMessage(ctx context.Context, msg SupplyChainMessage) error {
	messageBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
