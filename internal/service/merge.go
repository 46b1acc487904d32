package service

import (
	"github.com/supplyonchain/tracker/internal/model"
)

// TxHashUnavailable is the placeholder transaction hash shown when a product
// exists on-chain but no metadata record has been stored for it.
const TxHashUnavailable = "Not stored in DB"

// MergedProductView is the combined read model returned to API consumers.
// Authoritative state comes from the ledger record, descriptive fields from
// the metadata document when one exists.
type MergedProductView struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	BatchID            string `json:"batchId"`
	Manufacturer       string `json:"manufacturer"`
	AssignedWholesaler string `json:"assignedWholesaler"`
	AssignedRetailer   string `json:"assignedRetailer"`
	CurrentOwner       string `json:"currentOwner"`
	Status             uint8  `json:"status"`
	StatusLabel        string `json:"statusLabel"`
	Timestamp          int64  `json:"timestamp"`
	TransactionHash    string `json:"transactionHash"`
	Description        string `json:"description,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	QRCode             string `json:"qrCode,omitempty"`
}

// MergeProduct joins an on-chain record with its optional metadata document.
// The ledger always wins for ownership and lifecycle state; metadata only
// contributes descriptive fields and the transaction hash.
func MergeProduct(rec *model.ProductRecord, meta *model.MetadataRecord) MergedProductView {
	view := MergedProductView{
		ID:                 rec.ID,
		Name:               rec.Name,
		BatchID:            rec.BatchID,
		Manufacturer:       rec.Manufacturer,
		AssignedWholesaler: rec.AssignedWholesaler,
		AssignedRetailer:   rec.AssignedRetailer,
		CurrentOwner:       rec.CurrentOwner,
		Status:             uint8(rec.Status),
		StatusLabel:        rec.Status.String(),
		Timestamp:          rec.Timestamp,
		TransactionHash:    TxHashUnavailable,
	}

	if meta == nil {
		return view
	}

	view.TransactionHash = meta.TransactionHash
	view.Description = meta.Description
	view.CreatedAt = meta.CreatedAt
	view.QRCode = meta.QRCode
	return view
}
