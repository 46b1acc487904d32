package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// MetadataRecord is the off-chain product document. It duplicates the
// creation-time input on a best-effort basis; the ledger record stays the
// source of truth for state. Documents are created once and never updated.
type MetadataRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionHash string             `bson:"transactionHash" json:"transactionHash"`
	Manufacturer    string             `bson:"manufacturer" json:"manufacturer"`
	Name            string             `bson:"name" json:"name"`
	BatchID         string             `bson:"batchId" json:"batchId"`
	Wholesaler      string             `bson:"wholesaler" json:"wholesaler"`
	Retailer        string             `bson:"retailer" json:"retailer"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	// ProductID is the ledger id when the writer knew it at creation time.
	// Most documents predate the id (the creation tx was not yet mined), so
	// treat zero as absent.
	ProductID uint64 `bson:"productId,omitempty" json:"productId,omitempty"`
	// CreatedAt is client-supplied display data. Never use it for ordering;
	// the ledger timestamp is the only trustworthy time value.
	CreatedAt string `bson:"createdAt" json:"createdAt"`
	QRCode    string `bson:"qrCode" json:"qrCode"`
}
