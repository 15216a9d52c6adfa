package cwa

import "time"

// Expiry is how close the latest product is to running out.
type Expiry string

const (
	ExpiryActive   Expiry = "ACTIVE"   // More than nine minutes left
	ExpiryExpiring Expiry = "EXPIRING" // Expires within nine minutes
	ExpiryExpired  Expiry = "EXPIRED"  // Expired within the last day
	ExpiryInactive Expiry = "INACTIVE" // Long expired, never issued or unparseable
)

// Status summarises the latest product under an identifier.
type Status struct {
	ProductID string    `json:"product_id"`
	Series    string    `json:"series"`
	Expire    string    `json:"expire"`
	Expires   time.Time `json:"expires,omitzero"`
	Expiry    Expiry    `json:"expiry"`
}

// ExpiryAt classifies an expiration against now by whole minutes remaining.
func ExpiryAt(expires, now time.Time) Expiry {
	remaining := int64(expires.Sub(now) / time.Minute)
	switch {
	case remaining > 9:
		return ExpiryActive
	case remaining > 0:
		return ExpiryExpiring
	case remaining > -24*60:
		return ExpiryExpired
	}
	return ExpiryInactive
}

// ProductStatus parses the prior product and classifies it at now.
func ProductStatus(productID, cwsuID string, prior *Prior, now time.Time) Status {
	fields := prior.Parse(cwsuID)
	status := Status{
		ProductID: productID,
		Series:    fields.Series,
		Expire:    fields.Expire,
		Expiry:    ExpiryInactive,
	}
	if expires, ok := fields.Expires(); ok {
		status.Expires = expires
		status.Expiry = ExpiryAt(expires, now)
	}
	return status
}
