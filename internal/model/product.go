package model

// ProductStatus mirrors the ledger contract's status enum. The ordering is
// part of the contract: statuses only move forward along the chain.
type ProductStatus uint8

const (
	// StatusCreated indicates the product was registered by the manufacturer.
	StatusCreated ProductStatus = iota
	// StatusInTransit indicates the product is on its way to the wholesaler.
	StatusInTransit
	// StatusInWarehouse indicates the product arrived at the retailer's warehouse.
	StatusInWarehouse
	// StatusDelivered indicates the product reached the end consumer.
	StatusDelivered
)

// String returns the human-readable label for the status.
func (s ProductStatus) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusInTransit:
		return "In Transit"
	case StatusInWarehouse:
		return "In Warehouse"
	case StatusDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// ProductRecord is the on-chain product entry. The ledger is authoritative
// for every field here; records are never stored locally.
type ProductRecord struct {
	ID                 uint64
	Name               string
	BatchID            string
	Manufacturer       string
	AssignedWholesaler string
	AssignedRetailer   string
	CurrentOwner       string
	Status             ProductStatus
	Timestamp          int64
	// Exists distinguishes "no such id" from a genuinely zero-valued record.
	Exists bool
}
