package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// Querier is the read-only query surface of the lockstake module. Queries
// never mutate state; in particular, matured rebond locks are folded in for
// reporting without being persisted.
type Querier struct {
	*Keeper
}

// NewQuerier returns a Querier wrapping the given Keeper.
func NewQuerier(k *Keeper) Querier {
	return Querier{k}
}

// Staked reports an account's stake in one unbonding-period bucket, splitting
// out the portion still rebond-locked as of the current block time.
func (q Querier) Staked(ctx context.Context, addr sdk.AccAddress, unbondingPeriod uint64) (*types.StakedResponse, error) {
	if _, err := q.GetBucket(ctx, unbondingPeriod); err != nil {
		return nil, err
	}

	params, err := q.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	info, err := q.GetBondingInfo(ctx, addr, unbondingPeriod)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return &types.StakedResponse{
		Stake:           info.TotalStake(),
		TotalLocked:     info.TotalLocked(sdkCtx.BlockTime()),
		UnbondingPeriod: unbondingPeriod,
		TokenContract:   params.TokenContract,
	}, nil
}

// AllStaked lists an account's stake in every configured bucket, in ascending
// unbonding-period order.
func (q Querier) AllStaked(ctx context.Context, addr sdk.AccAddress) (*types.AllStakedResponse, error) {
	params, err := q.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime()

	var stakes []types.StakedResponse
	err = q.Buckets.Walk(ctx, nil, func(unbondingPeriod uint64, bucket types.Bucket) (stop bool, err error) {
		info, err := q.GetBondingInfo(ctx, addr, unbondingPeriod)
		if err != nil {
			return true, err
		}

		stakes = append(stakes, types.StakedResponse{
			Stake:           info.TotalStake(),
			TotalLocked:     info.TotalLocked(now),
			UnbondingPeriod: unbondingPeriod,
			TokenContract:   params.TokenContract,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.AllStakedResponse{Stakes: stakes}, nil
}

// TotalStaked returns the sum of all bonded stake.
func (q Querier) TotalStaked(ctx context.Context) (*types.TotalStakedResponse, error) {
	tokenInfo, err := q.GetTokenInfo(ctx)
	if err != nil {
		return nil, err
	}

	return &types.TotalStakedResponse{TotalStaked: tokenInfo.Staked}, nil
}

// TotalUnbonding returns the sum of all stake waiting in claim queues.
func (q Querier) TotalUnbonding(ctx context.Context) (*types.TotalUnbondingResponse, error) {
	tokenInfo, err := q.GetTokenInfo(ctx)
	if err != nil {
		return nil, err
	}

	return &types.TotalUnbondingResponse{TotalUnbonding: tokenInfo.Unbonding}, nil
}

// BondingInfo lists every configured bucket with its multipliers and staked
// total, in ascending unbonding-period order.
func (q Querier) BondingInfo(ctx context.Context) (*types.BondingInfoResponse, error) {
	var bonding []types.BondingPeriodInfo
	err := q.Buckets.Walk(ctx, nil, func(unbondingPeriod uint64, bucket types.Bucket) (stop bool, err error) {
		bonding = append(bonding, types.BondingPeriodInfo{
			UnbondingPeriod:  unbondingPeriod,
			VotingMultiplier: bucket.VotingMultiplier,
			RewardMultiplier: bucket.RewardMultiplier,
			TotalStaked:      bucket.TotalStaked,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.BondingInfoResponse{Bonding: bonding}, nil
}

// Claims returns an account's pending claim queue, matured claims included
// until they are actually claimed.
func (q Querier) Claims(ctx context.Context, addr sdk.AccAddress) (*types.ClaimsResponse, error) {
	claims, err := q.GetClaims(ctx, addr)
	if err != nil {
		return nil, err
	}

	return &types.ClaimsResponse{Claims: claims}, nil
}

// VotingPowerAtHeight returns an account's voting power as of the given
// height, defaulting to the current height.
func (q Querier) VotingPowerAtHeight(ctx context.Context, addr sdk.AccAddress, height int64) (*types.VotingPowerAtHeightResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if height == 0 {
		height = sdkCtx.BlockHeight()
	}

	power, err := q.GetVotingPowerAtHeight(ctx, addr, height)
	if err != nil {
		return nil, err
	}

	return &types.VotingPowerAtHeightResponse{
		Power:  power,
		Height: height,
	}, nil
}

// TotalPowerAtHeight returns the total voting power as of the given height,
// defaulting to the current height.
func (q Querier) TotalPowerAtHeight(ctx context.Context, height int64) (*types.TotalPowerAtHeightResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if height == 0 {
		height = sdkCtx.BlockHeight()
	}

	power, err := q.GetTotalVotingPowerAtHeight(ctx, height)
	if err != nil {
		return nil, err
	}

	return &types.TotalPowerAtHeightResponse{
		Power:  power,
		Height: height,
	}, nil
}

// Rewards returns an account's current reward power.
func (q Querier) Rewards(ctx context.Context, addr sdk.AccAddress) (*types.RewardsResponse, error) {
	power, err := q.GetRewardPower(ctx, addr)
	if err != nil {
		return nil, err
	}

	return &types.RewardsResponse{Rewards: power}, nil
}

// TotalRewards returns the sum of all reward powers.
func (q Querier) TotalRewards(ctx context.Context) (*types.TotalRewardsResponse, error) {
	total, err := q.GetTotalRewardPower(ctx)
	if err != nil {
		return nil, err
	}

	return &types.TotalRewardsResponse{Rewards: total}, nil
}

// WithdrawableRewards returns what owner could withdraw right now.
func (q Querier) WithdrawableRewards(ctx context.Context, owner sdk.AccAddress) (*types.WithdrawableRewardsResponse, error) {
	rewards, err := q.Keeper.WithdrawableRewards(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &types.WithdrawableRewardsResponse{Rewards: rewards}, nil
}

// DistributedRewards returns the lifetime distributed total and the portion
// not yet withdrawn.
func (q Querier) DistributedRewards(ctx context.Context) (*types.DistributedRewardsResponse, error) {
	distribution, err := q.GetDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &types.DistributedRewardsResponse{
		Distributed:  distribution.DistributedTotal,
		Withdrawable: distribution.WithdrawableTotal,
	}, nil
}

// UndistributedRewards returns rewards received but not yet distributed.
func (q Querier) UndistributedRewards(ctx context.Context) (*types.UndistributedRewardsResponse, error) {
	rewards, err := q.Keeper.UndistributedRewards(ctx)
	if err != nil {
		return nil, err
	}

	return &types.UndistributedRewardsResponse{Rewards: rewards}, nil
}

// Delegated returns the account allowed to trigger withdrawal of owner's
// rewards, the owner itself when none was registered.
func (q Querier) Delegated(ctx context.Context, owner sdk.AccAddress) (*types.DelegatedResponse, error) {
	adjustment, err := q.GetWithdrawAdjustment(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &types.DelegatedResponse{Delegated: adjustment.Delegate.String()}, nil
}

// WithdrawAdjustmentData returns an account's raw reward-accounting record.
func (q Querier) WithdrawAdjustmentData(ctx context.Context, addr sdk.AccAddress) (*types.WithdrawAdjustmentDataResponse, error) {
	adjustment, err := q.GetWithdrawAdjustment(ctx, addr)
	if err != nil {
		return nil, err
	}

	return &types.WithdrawAdjustmentDataResponse{
		SharesCorrection: adjustment.SharesCorrection,
		WithdrawnRewards: adjustment.WithdrawnRewards,
		Delegate:         adjustment.Delegate.String(),
	}, nil
}

// Admin returns the current admin address, empty when none is set.
func (q Querier) Admin(ctx context.Context) (*types.AdminResponse, error) {
	admin, err := q.GetAdmin(ctx)
	if err != nil {
		return nil, err
	}

	return &types.AdminResponse{Admin: admin}, nil
}

// Observers returns the registered observer list.
func (q Querier) Observers(ctx context.Context) (*types.ObserversResponse, error) {
	observers, err := q.GetObservers(ctx)
	if err != nil {
		return nil, err
	}

	return &types.ObserversResponse{Observers: observers}, nil
}

// AllVotingPowers walks the current voting-power index. Used by invariant
// checks.
func (q Querier) AllVotingPowers(ctx context.Context) (map[string]math.Int, error) {
	powers := make(map[string]math.Int)
	err := q.VotingPowers.Walk(ctx, nil, func(key []byte, value math.Int) (stop bool, err error) {
		powers[sdk.AccAddress(key).String()] = value
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return powers, nil
}
