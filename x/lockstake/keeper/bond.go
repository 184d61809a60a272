package keeper

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// Bond credits a delegation relayed by the external token ledger to the
// delegator's record in the given unbonding-period bucket. tokenContract is
// the address that relayed the notification and must match the configured
// token ledger; the delegator claim inside the notification is only honored
// for actions in the delegator's favor.
func (k Keeper) Bond(ctx context.Context, tokenContract string, delegator sdk.AccAddress, amount math.Int, unbondingPeriod uint64) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	if params.TokenContract != tokenContract {
		return errorsmod.Wrapf(types.ErrInvalidTokenContract, "got %s, expected %s", tokenContract, params.TokenContract)
	}

	bucket, err := k.GetBucket(ctx, unbondingPeriod)
	if err != nil {
		return err
	}

	bucket.TotalStaked = bucket.TotalStaked.Add(amount)
	if err := k.Buckets.Set(ctx, unbondingPeriod, bucket); err != nil {
		return err
	}

	info, err := k.GetBondingInfo(ctx, delegator, unbondingPeriod)
	if err != nil {
		return err
	}

	oldVotes, oldRewards := info.Votes, info.Rewards
	info.AddUnlockedTokens(amount)

	stake := info.TotalStake()
	info.Votes = params.Power(stake, bucket.VotingMultiplier)
	info.Rewards = params.Power(stake, bucket.RewardMultiplier)

	if err := k.Bonds.Set(ctx, collections.Join(delegator.Bytes(), unbondingPeriod), info); err != nil {
		return err
	}

	if err := k.updateMembership(ctx, delegator, []math.Int{oldVotes}, []math.Int{info.Votes}); err != nil {
		return err
	}
	if err := k.updateRewards(ctx, delegator, []math.Int{oldRewards}, []math.Int{info.Rewards}); err != nil {
		return err
	}

	tokenInfo, err := k.GetTokenInfo(ctx)
	if err != nil {
		return err
	}
	tokenInfo.Staked = tokenInfo.Staked.Add(amount)
	if err := k.TokenInfo.Set(ctx, tokenInfo); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBond,
			sdk.NewAttribute(types.AttributeKeySender, delegator.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyUnbondingPeriod, strconv.FormatUint(unbondingPeriod, 10)),
		),
	)

	return nil
}

// Unbond begins the timed release of stake from a bucket. Matured rebond
// locks are folded in first; the free-stake subtraction is the only capacity
// check. The released amount becomes a claim maturing after the bucket's
// unbonding period.
func (k Keeper) Unbond(ctx context.Context, sender sdk.AccAddress, amount math.Int, unbondingPeriod uint64) (time.Time, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return time.Time{}, err
	}

	bucket, err := k.GetBucket(ctx, unbondingPeriod)
	if err != nil {
		return time.Time{}, err
	}

	bucket.TotalStaked = bucket.TotalStaked.Sub(amount)
	if bucket.TotalStaked.IsNegative() {
		return time.Time{}, types.ErrInsufficientStake
	}
	if err := k.Buckets.Set(ctx, unbondingPeriod, bucket); err != nil {
		return time.Time{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	info, err := k.GetBondingInfo(ctx, sender, unbondingPeriod)
	if err != nil {
		return time.Time{}, err
	}

	oldVotes, oldRewards := info.Votes, info.Rewards
	if err := info.ReleaseStake(now, amount); err != nil {
		return time.Time{}, err
	}

	stake := info.TotalStake()
	info.Votes = params.Power(stake, bucket.VotingMultiplier)
	info.Rewards = params.Power(stake, bucket.RewardMultiplier)

	if err := k.Bonds.Set(ctx, collections.Join(sender.Bytes(), unbondingPeriod), info); err != nil {
		return time.Time{}, err
	}

	releaseAt := now.Add(time.Duration(unbondingPeriod) * time.Second)
	if err := k.CreateClaim(ctx, sender, amount, releaseAt); err != nil {
		return time.Time{}, err
	}

	if err := k.updateMembership(ctx, sender, []math.Int{oldVotes}, []math.Int{info.Votes}); err != nil {
		return time.Time{}, err
	}
	if err := k.updateRewards(ctx, sender, []math.Int{oldRewards}, []math.Int{info.Rewards}); err != nil {
		return time.Time{}, err
	}

	tokenInfo, err := k.GetTokenInfo(ctx)
	if err != nil {
		return time.Time{}, err
	}
	tokenInfo.Staked = saturatingSub(tokenInfo.Staked, amount)
	tokenInfo.Unbonding = tokenInfo.Unbonding.Add(amount)
	if err := k.TokenInfo.Set(ctx, tokenInfo); err != nil {
		return time.Time{}, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnbond,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyUnbondingPeriod, strconv.FormatUint(unbondingPeriod, 10)),
		),
	)

	return releaseAt, nil
}

// Rebond atomically moves stake between two buckets. Moving to a shorter
// unbonding period credits the stake as immediately free; moving to a longer
// one locks it until the difference between the two periods has elapsed, so
// the longer lockup cannot be circumvented by rebonding down and back up.
// The two bucket deltas are combined into a single membership diff and a
// single rewards correction.
func (k Keeper) Rebond(ctx context.Context, sender sdk.AccAddress, amount math.Int, bondFrom, bondTo uint64) error {
	if bondFrom == bondTo {
		return types.ErrSameUnbondingRebond
	}
	if !amount.IsPositive() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "rebond amount must be positive")
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	fromBucket, err := k.GetBucket(ctx, bondFrom)
	if err != nil {
		return err
	}

	fromBucket.TotalStaked = fromBucket.TotalStaked.Sub(amount)
	if fromBucket.TotalStaked.IsNegative() {
		return types.ErrInsufficientStake
	}
	if err := k.Buckets.Set(ctx, bondFrom, fromBucket); err != nil {
		return err
	}

	toBucket, err := k.GetBucket(ctx, bondTo)
	if err != nil {
		return err
	}

	toBucket.TotalStaked = toBucket.TotalStaked.Add(amount)
	if err := k.Buckets.Set(ctx, bondTo, toBucket); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	fromInfo, err := k.GetBondingInfo(ctx, sender, bondFrom)
	if err != nil {
		return err
	}

	oldVotesFrom, oldRewardsFrom := fromInfo.Votes, fromInfo.Rewards
	if err := fromInfo.ReleaseStake(now, amount); err != nil {
		return err
	}

	fromStake := fromInfo.TotalStake()
	fromInfo.Votes = params.Power(fromStake, fromBucket.VotingMultiplier)
	fromInfo.Rewards = params.Power(fromStake, fromBucket.RewardMultiplier)

	if err := k.Bonds.Set(ctx, collections.Join(sender.Bytes(), bondFrom), fromInfo); err != nil {
		return err
	}

	toInfo, err := k.GetBondingInfo(ctx, sender, bondTo)
	if err != nil {
		return err
	}

	oldVotesTo, oldRewardsTo := toInfo.Votes, toInfo.Rewards
	if bondFrom > bondTo {
		toInfo.AddLockedTokens(now.Add(time.Duration(bondFrom-bondTo)*time.Second), amount)
	} else {
		toInfo.AddUnlockedTokens(amount)
	}

	toStake := toInfo.TotalStake()
	toInfo.Votes = params.Power(toStake, toBucket.VotingMultiplier)
	toInfo.Rewards = params.Power(toStake, toBucket.RewardMultiplier)

	if err := k.Bonds.Set(ctx, collections.Join(sender.Bytes(), bondTo), toInfo); err != nil {
		return err
	}

	if err := k.updateMembership(ctx, sender,
		[]math.Int{oldVotesTo, oldVotesFrom},
		[]math.Int{toInfo.Votes, fromInfo.Votes},
	); err != nil {
		return err
	}
	if err := k.updateRewards(ctx, sender,
		[]math.Int{oldRewardsTo, oldRewardsFrom},
		[]math.Int{toInfo.Rewards, fromInfo.Rewards},
	); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRebond,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyBondFrom, strconv.FormatUint(bondFrom, 10)),
			sdk.NewAttribute(types.AttributeKeyBondTo, strconv.FormatUint(bondTo, 10)),
		),
	)

	return nil
}

// GetTokenInfo returns the staked/unbonding totals, defaulting to zero.
func (k Keeper) GetTokenInfo(ctx context.Context) (types.TokenInfo, error) {
	tokenInfo, err := k.TokenInfo.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.NewTokenInfo(), nil
	} else if err != nil {
		return types.TokenInfo{}, err
	}

	return tokenInfo, nil
}

// updateMembership records an account's net voting-power change, checkpoints
// it at the current height, and queues one member-diff notification per
// registered observer. All of a command's per-bucket deltas must be passed in
// one call so a single net diff is emitted.
func (k Keeper) updateMembership(ctx context.Context, addr sdk.AccAddress, oldVotes, newVotes []math.Int) error {
	oldPower := sumInts(oldVotes)
	newPower := sumInts(newVotes)

	// short-circuit if no change
	if oldPower.Equal(newPower) {
		return nil
	}

	var oldTotal *math.Int
	if power, err := k.VotingPowers.Get(ctx, addr.Bytes()); err == nil {
		oldTotal = &power
	} else if !errors.Is(err, collections.ErrNotFound) {
		return err
	}

	newTotal := newPower.Sub(oldPower)
	if oldTotal != nil {
		newTotal = newTotal.Add(*oldTotal)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	height := sdkCtx.BlockHeight()

	var newHook *math.Int
	if newTotal.IsZero() {
		if err := k.VotingPowers.Remove(ctx, addr.Bytes()); err != nil {
			return err
		}
	} else {
		if err := k.VotingPowers.Set(ctx, addr.Bytes(), newTotal); err != nil {
			return err
		}
		newHook = &newTotal
	}
	if err := k.VotingPowerCheckpoints.Set(ctx, collections.Join(addr.Bytes(), height), newTotal); err != nil {
		return err
	}

	total, err := k.GetTotalVotingPower(ctx)
	if err != nil {
		return err
	}
	total = total.Add(newPower).Sub(oldPower)
	if err := k.TotalVotingPower.Set(ctx, total); err != nil {
		return err
	}
	if err := k.TotalVotingPowerCheckpoints.Set(ctx, height, total); err != nil {
		return err
	}

	// alert the observers
	observers, err := k.GetObservers(ctx)
	if err != nil {
		return err
	}

	diff := types.NewMemberDiff(addr.String(), oldTotal, newHook)
	for _, observer := range observers {
		k.outbox.Append(types.MsgMemberChanged{
			Observer: observer,
			Diffs:    []types.MemberDiff{diff},
		})
	}

	return nil
}

// updateRewards records an account's net reward-power change and applies the
// shares correction at the current shares-per-point rate, atomically with the
// power change, so the account neither gains nor loses rewards accrued under
// the previous rate.
func (k Keeper) updateRewards(ctx context.Context, addr sdk.AccAddress, oldRewards, newRewards []math.Int) error {
	oldPower := sumInts(oldRewards)
	newPower := sumInts(newRewards)

	// short-circuit if no change
	if oldPower.Equal(newPower) {
		return nil
	}

	oldTotalPower := math.ZeroInt()
	if power, err := k.RewardPowers.Get(ctx, addr.Bytes()); err == nil {
		oldTotalPower = power
	} else if !errors.Is(err, collections.ErrNotFound) {
		return err
	}

	if newPower.IsZero() && oldTotalPower.Equal(oldPower) {
		if err := k.RewardPowers.Remove(ctx, addr.Bytes()); err != nil {
			return err
		}
	} else {
		newTotalPower := oldTotalPower.Add(newPower).Sub(oldPower)
		if err := k.RewardPowers.Set(ctx, addr.Bytes(), newTotalPower); err != nil {
			return err
		}
	}

	total, err := k.GetTotalRewardPower(ctx)
	if err != nil {
		return err
	}
	if err := k.TotalRewardPower.Set(ctx, total.Add(newPower).Sub(oldPower)); err != nil {
		return err
	}

	distribution, err := k.GetDistribution(ctx)
	if err != nil {
		return err
	}

	return k.applySharesCorrection(ctx, addr, distribution.SharesPerPoint, newPower.Sub(oldPower))
}

// applySharesCorrection adjusts the account's correction term by
// -sharesPerPoint * diff, lazily creating the adjustment record with the
// withdrawal delegate defaulting to the owner.
func (k Keeper) applySharesCorrection(ctx context.Context, addr sdk.AccAddress, sharesPerPoint, diff math.Int) error {
	adjustment, err := k.GetWithdrawAdjustment(ctx, addr)
	if err != nil {
		return err
	}

	adjustment.SharesCorrection = adjustment.SharesCorrection.Sub(sharesPerPoint.Mul(diff))
	return k.WithdrawAdjustments.Set(ctx, addr.Bytes(), adjustment)
}

func sumInts(values []math.Int) math.Int {
	sum := math.ZeroInt()
	for _, value := range values {
		sum = sum.Add(value)
	}

	return sum
}

func saturatingSub(a, b math.Int) math.Int {
	result := a.Sub(b)
	if result.IsNegative() {
		return math.ZeroInt()
	}

	return result
}
