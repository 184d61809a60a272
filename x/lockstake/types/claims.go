package types

import (
	"time"

	"cosmossdk.io/math"
)

// Claim is a queued, maturing right to reclaim previously unbonded stake.
type Claim struct {
	Amount    math.Int  `json:"amount"`
	ReleaseAt time.Time `json:"release_at"`
}

// Claims is a per-account claim queue, kept sorted by release time.
type Claims []Claim

// Add inserts a claim keeping the queue sorted by maturity. Unbonds happen in
// time order per account, so the common case is an append.
func (cs Claims) Add(amount math.Int, releaseAt time.Time) Claims {
	pos := len(cs)
	for pos > 0 && cs[pos-1].ReleaseAt.After(releaseAt) {
		pos--
	}

	cs = append(cs, Claim{})
	copy(cs[pos+1:], cs[pos:])
	cs[pos] = Claim{Amount: amount, ReleaseAt: releaseAt}
	return cs
}

// Release partitions the queue at now, returning the matured sum and the
// still-pending remainder.
func (cs Claims) Release(now time.Time) (math.Int, Claims) {
	released := math.ZeroInt()
	var pending Claims
	for _, claim := range cs {
		if claim.ReleaseAt.After(now) {
			pending = append(pending, claim)
		} else {
			released = released.Add(claim.Amount)
		}
	}

	return released, pending
}
