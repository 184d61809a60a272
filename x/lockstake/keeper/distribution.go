package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// GetDistribution returns the distribution pool singleton, defaulting to
// zero.
func (k Keeper) GetDistribution(ctx context.Context) (types.Distribution, error) {
	distribution, err := k.Distribution.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.NewDistribution(), nil
	} else if err != nil {
		return types.Distribution{}, err
	}

	return distribution, nil
}

// GetRewardPower returns an account's current reward power, defaulting to
// zero.
func (k Keeper) GetRewardPower(ctx context.Context, addr sdk.AccAddress) (math.Int, error) {
	power, err := k.RewardPowers.Get(ctx, addr.Bytes())
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	} else if err != nil {
		return math.Int{}, err
	}

	return power, nil
}

// GetTotalRewardPower returns the sum of all reward powers, defaulting to
// zero.
func (k Keeper) GetTotalRewardPower(ctx context.Context) (math.Int, error) {
	total, err := k.TotalRewardPower.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	} else if err != nil {
		return math.Int{}, err
	}

	return total, nil
}

// GetWithdrawAdjustment returns an account's withdraw adjustment, defaulting
// to a fresh record with the delegate pointing at the owner.
func (k Keeper) GetWithdrawAdjustment(ctx context.Context, addr sdk.AccAddress) (types.WithdrawAdjustment, error) {
	adjustment, err := k.WithdrawAdjustments.Get(ctx, addr.Bytes())
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.NewWithdrawAdjustment(addr), nil
	} else if err != nil {
		return types.WithdrawAdjustment{}, err
	}

	return adjustment, nil
}

// undistributedRewards returns the part of the ledger's token balance that is
// neither staked custody nor already-distributed rewards. Tokens sitting in
// the claim queue still count as custody here.
func (k Keeper) undistributedRewards(ctx context.Context) (math.Int, error) {
	balance, err := k.tokenKeeper.Balance(ctx, k.ledgerAddr)
	if err != nil {
		return math.Int{}, err
	}

	tokenInfo, err := k.GetTokenInfo(ctx)
	if err != nil {
		return math.Int{}, err
	}

	return balance.Sub(tokenInfo.Total()), nil
}

// DistributeRewards splits everything received since the previous
// distribution between all current reward-power holders, in O(1): it only
// raises the global shares-per-point rate and carries the division remainder
// forward. A zero received amount is a silent no-op; an empty membership is
// an error. The returned amount is what was distributed.
func (k Keeper) DistributeRewards(ctx context.Context, sender, source string) (math.Int, error) {
	total, err := k.GetTotalRewardPower(ctx)
	if err != nil {
		return math.Int{}, err
	}

	// There are no points in play - noone to distribute to
	if total.IsZero() {
		return math.Int{}, types.ErrNoMembers
	}

	if source == "" {
		source = sender
	}

	distribution, err := k.GetDistribution(ctx)
	if err != nil {
		return math.Int{}, err
	}

	undistributed, err := k.undistributedRewards(ctx)
	if err != nil {
		return math.Int{}, err
	}

	amount := undistributed.Sub(distribution.WithdrawableTotal)
	if amount.IsZero() {
		return math.ZeroInt(), nil
	}
	if amount.IsNegative() {
		return math.Int{}, errorsmod.Wrap(types.ErrInvalidRewards, "token balance below tracked withdrawable total")
	}

	points := amount.Mul(types.SharesScale()).Add(distribution.SharesLeftover)
	distribution.SharesPerPoint = distribution.SharesPerPoint.Add(points.Quo(total))
	distribution.SharesLeftover = points.Mod(total)

	// The full amount becomes withdrawable immediately; the rounding error of
	// the division is carried by the leftover, not dropped.
	distribution.DistributedTotal = distribution.DistributedTotal.Add(amount)
	distribution.WithdrawableTotal = distribution.WithdrawableTotal.Add(amount)

	if err := k.Distribution.Set(ctx, distribution); err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDistributeRewards,
			sdk.NewAttribute(types.AttributeKeySender, source),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	return amount, nil
}

// WithdrawableRewards returns what owner could withdraw right now.
func (k Keeper) WithdrawableRewards(ctx context.Context, owner sdk.AccAddress) (math.Int, error) {
	distribution, err := k.GetDistribution(ctx)
	if err != nil {
		return math.Int{}, err
	}

	adjustment, err := k.GetWithdrawAdjustment(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}

	power, err := k.GetRewardPower(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}

	return distribution.WithdrawableRewards(power, adjustment)
}

// WithdrawRewards pays out owner's accrued rewards to receiver. Only the
// owner or the owner's registered withdrawal delegate may trigger it; a zero
// withdrawable amount is a silent no-op. An owner with no stored adjustment
// falls under the same rule: the lazily-created default record implies zero
// accrued rewards, so the call succeeds without paying or writing anything
// rather than rejecting the unknown account. The transfer itself is queued as
// an outbox instruction for the token ledger.
func (k Keeper) WithdrawRewards(ctx context.Context, sender, owner, receiver sdk.AccAddress) (math.Int, error) {
	adjustment, err := k.GetWithdrawAdjustment(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}

	if !sender.Equals(owner) && !sender.Equals(adjustment.Delegate) {
		return math.Int{}, errorsmod.Wrap(sdkerrors.ErrUnauthorized, "caller is neither the owner nor the withdrawal delegate")
	}

	distribution, err := k.GetDistribution(ctx)
	if err != nil {
		return math.Int{}, err
	}

	power, err := k.GetRewardPower(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}

	reward, err := distribution.WithdrawableRewards(power, adjustment)
	if err != nil {
		return math.Int{}, err
	}

	if reward.IsZero() {
		// Just do nothing
		return math.ZeroInt(), nil
	}

	adjustment.WithdrawnRewards = adjustment.WithdrawnRewards.Add(reward)
	if err := k.WithdrawAdjustments.Set(ctx, owner.Bytes(), adjustment); err != nil {
		return math.Int{}, err
	}

	distribution.WithdrawableTotal = distribution.WithdrawableTotal.Sub(reward)
	if distribution.WithdrawableTotal.IsNegative() {
		return math.Int{}, errorsmod.Wrap(types.ErrInvalidRewards, "withdrawable total underflow")
	}
	if err := k.Distribution.Set(ctx, distribution); err != nil {
		return math.Int{}, err
	}

	k.outbox.Append(types.MsgTransfer{
		Recipient: receiver.String(),
		Amount:    reward,
	})

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawRewards,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeyReceiver, receiver.String()),
			sdk.NewAttribute(types.AttributeKeyReward, reward.String()),
		),
	)

	return reward, nil
}

// DelegateWithdrawal registers delegate as the one account allowed to
// trigger withdrawal of sender's rewards. It moves no funds.
func (k Keeper) DelegateWithdrawal(ctx context.Context, sender, delegate sdk.AccAddress) error {
	adjustment, err := k.GetWithdrawAdjustment(ctx, sender)
	if err != nil {
		return err
	}

	adjustment.Delegate = delegate
	if err := k.WithdrawAdjustments.Set(ctx, sender.Bytes(), adjustment); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDelegateWithdrawal,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyDelegate, delegate.String()),
		),
	)

	return nil
}

// UndistributedRewards returns rewards received but not yet distributed.
func (k Keeper) UndistributedRewards(ctx context.Context) (math.Int, error) {
	distribution, err := k.GetDistribution(ctx)
	if err != nil {
		return math.Int{}, err
	}

	undistributed, err := k.undistributedRewards(ctx)
	if err != nil {
		return math.Int{}, err
	}

	return undistributed.Sub(distribution.WithdrawableTotal), nil
}
