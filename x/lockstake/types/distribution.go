package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SharesShift is how many bits the shares-per-point exchange rate is shifted
// left to retain fractional precision under integer division. 32 bits keeps
// the fixed-point math exact while bounding the handled token range.
const SharesShift = 32

var sharesScale = math.NewInt(1 << SharesShift)

// SharesScale returns the fixed-point scaling factor, 2^SharesShift.
func SharesScale() math.Int {
	return sharesScale
}

// Distribution is the global lazy fair-share accumulator. Every distribution
// raises SharesPerPoint by the distributed amount (shifted) divided by the
// total reward power; the division remainder is carried in SharesLeftover and
// folded into the next distribution.
type Distribution struct {
	// SharesPerPoint is how many (shifted) shares a single point of reward
	// power is worth.
	SharesPerPoint math.Int `json:"shares_per_point"`
	// SharesLeftover holds shares not fully distributed by previous
	// distributions, to be redistributed later.
	SharesLeftover math.Int `json:"shares_leftover"`
	// DistributedTotal is the total amount of rewards ever distributed.
	DistributedTotal math.Int `json:"distributed_total"`
	// WithdrawableTotal is the total amount of rewards not yet withdrawn.
	WithdrawableTotal math.Int `json:"withdrawable_total"`
}

// NewDistribution creates a zeroed distribution pool.
func NewDistribution() Distribution {
	return Distribution{
		SharesPerPoint:    math.ZeroInt(),
		SharesLeftover:    math.ZeroInt(),
		DistributedTotal:  math.ZeroInt(),
		WithdrawableTotal: math.ZeroInt(),
	}
}

// WithdrawableRewards computes the amount an account with the given reward
// power may withdraw. A negative result means the correction term went out of
// sync with the power changes and is surfaced as an invariant violation
// rather than clamped.
func (d Distribution) WithdrawableRewards(rewardPower math.Int, adjustment WithdrawAdjustment) (math.Int, error) {
	shares := d.SharesPerPoint.Mul(rewardPower).Add(adjustment.SharesCorrection)
	if shares.IsNegative() {
		return math.Int{}, ErrInvalidRewards
	}

	amount := shares.Quo(sharesScale).Sub(adjustment.WithdrawnRewards)
	if amount.IsNegative() {
		return math.Int{}, ErrInvalidRewards
	}

	return amount, nil
}

// WithdrawAdjustment carries the per-account bookkeeping needed to withdraw
// fairly after reward-power changes.
type WithdrawAdjustment struct {
	// SharesCorrection is added to the raw share balance on withdrawal. It is
	// decremented by SharesPerPoint whenever the account gains a point of
	// reward power, so power changes never apply retroactively.
	SharesCorrection math.Int `json:"shares_correction"`
	// WithdrawnRewards is how much the account has already withdrawn.
	WithdrawnRewards math.Int `json:"withdrawn_rewards"`
	// Delegate is the only other account permitted to trigger a withdrawal
	// on this account's behalf. Defaults to the owner itself.
	Delegate sdk.AccAddress `json:"delegate"`
}

// NewWithdrawAdjustment creates the default adjustment for an owner, with the
// withdrawal delegate pointing back at the owner.
func NewWithdrawAdjustment(owner sdk.AccAddress) WithdrawAdjustment {
	return WithdrawAdjustment{
		SharesCorrection: math.ZeroInt(),
		WithdrawnRewards: math.ZeroInt(),
		Delegate:         owner,
	}
}
