package billing

import (
	"time"

	"github.com/hoa/backend/internal/domain/shared"
)

// ErrNoActiveRate is returned when no rate row can serve a (type, date) pair
var ErrNoActiveRate = shared.NewDomainError("NO_ACTIVE_RATE", "No active dues rate for the requested type and date")

// ResolveRate picks the authoritative rate for a payment type on a target
// date: active, matching type, latest effective date not after the target.
// Ties on effective date go to the most recently created row.
func ResolveRate(rates []*DueRate, paymentType PaymentType, target time.Time) (*DueRate, error) {
	var best *DueRate
	for _, rate := range rates {
		if rate.PaymentType != paymentType || !rate.AppliesOn(target) {
			continue
		}
		if best == nil {
			best = rate
			continue
		}
		if rate.EffectiveDate.After(best.EffectiveDate) {
			best = rate
			continue
		}
		// Later iteration order stands in for insertion order when
		// creation timestamps collide
		if rate.EffectiveDate.Equal(best.EffectiveDate) && !rate.CreatedAt.Before(best.CreatedAt) {
			best = rate
		}
	}

	if best == nil {
		return nil, ErrNoActiveRate
	}
	return best, nil
}
