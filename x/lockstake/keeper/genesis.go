package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// InitGenesis sets up the ledger from genesis state: parameters, the
// unbonding-period buckets, the optional admin, and the observer list. All
// stake, claim, and reward state starts empty.
func (k Keeper) InitGenesis(ctx context.Context, genState *types.GenesisState) error {
	if err := types.ValidateGenesis(genState); err != nil {
		return err
	}

	params := genState.Params
	if params.MinBond.LT(math.OneInt()) {
		params.MinBond = math.OneInt()
	}
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}

	for _, bucket := range genState.Buckets {
		if err := k.Buckets.Set(ctx, bucket.UnbondingPeriod, types.NewBucket(bucket.VotingMultiplier, bucket.RewardMultiplier)); err != nil {
			return err
		}
	}

	if genState.Admin != "" {
		if err := k.Admin.Set(ctx, genState.Admin); err != nil {
			return err
		}
	}

	if len(genState.Observers) > 0 {
		if err := k.Observers.Set(ctx, genState.Observers); err != nil {
			return err
		}
	}

	if err := k.TokenInfo.Set(ctx, types.NewTokenInfo()); err != nil {
		return err
	}
	if err := k.TotalVotingPower.Set(ctx, math.ZeroInt()); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := k.TotalVotingPowerCheckpoints.Set(ctx, sdkCtx.BlockHeight(), math.ZeroInt()); err != nil {
		return err
	}

	if err := k.TotalRewardPower.Set(ctx, math.ZeroInt()); err != nil {
		return err
	}

	return k.Distribution.Set(ctx, types.NewDistribution())
}

// ExportGenesis returns the ledger's configuration as genesis state. Live
// stake and reward state is not exported; migrating it is a host concern.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	var buckets []types.BucketConfig
	err = k.Buckets.Walk(ctx, nil, func(unbondingPeriod uint64, bucket types.Bucket) (stop bool, err error) {
		buckets = append(buckets, types.BucketConfig{
			UnbondingPeriod:  unbondingPeriod,
			VotingMultiplier: bucket.VotingMultiplier,
			RewardMultiplier: bucket.RewardMultiplier,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	admin, err := k.GetAdmin(ctx)
	if err != nil {
		return nil, err
	}

	observers, err := k.GetObservers(ctx)
	if err != nil {
		return nil, err
	}

	return types.NewGenesisState(params, buckets, admin, observers), nil
}
