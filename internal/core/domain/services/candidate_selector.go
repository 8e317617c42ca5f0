package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CandidateSelector is a domain service that filters a radius query result
// down to the couriers actually eligible to receive an offer.
//
// Filtering rules:
//   - Inactive and on-break couriers are skipped
//   - Couriers already carrying maxOrdersPerCourier active orders are skipped
//   - A cap of zero disables load filtering entirely
//
// The locator returns candidates ordered nearest-first and the selector
// preserves that order, so offers always go to the closest eligible courier
// before a farther one.
type CandidateSelector struct{}

// NewCandidateSelector creates a new CandidateSelector instance.
func NewCandidateSelector() CandidateSelector {
	return CandidateSelector{}
}

// Select returns the eligible candidates in their original order. loads maps
// courier IDs to their current count of active orders; missing entries count
// as zero.
func (s CandidateSelector) Select(
	candidates []*courier.Courier,
	loads map[kernel.UUID]int,
	maxOrdersPerCourier int,
) ([]*courier.Courier, error) {
	eligible := make([]*courier.Courier, 0, len(candidates))

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsActive() {
			continue
		}

		if maxOrdersPerCourier > 0 && loads[c.ID()] >= maxOrdersPerCourier {
			continue
		}

		eligible = append(eligible, c)
	}

	return eligible, nil
}
