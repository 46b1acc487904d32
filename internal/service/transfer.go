package service

import (
	"github.com/supplyonchain/tracker/internal/model"
)

// NextRecipient decides who a product moves to when caller hands it off.
// The supply chain is fixed: manufacturer -> wholesaler -> retailer ->
// consumer. The retailer must name the consumer address since the contract
// has no assigned slot for it.
//
// Addresses are compared exactly as stored; callers are expected to pass
// checksummed addresses consistently.
func NextRecipient(rec *model.ProductRecord, caller, consumerAddr string) (string, error) {
	switch caller {
	case rec.Manufacturer:
		return rec.AssignedWholesaler, nil
	case rec.AssignedWholesaler:
		return rec.AssignedRetailer, nil
	case rec.AssignedRetailer:
		if consumerAddr == "" {
			return "", NewValidationError("consumerAddress", "required when the retailer transfers to the consumer")
		}
		return consumerAddr, nil
	default:
		return "", ErrUnauthorized
	}
}
