package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// RegisterInvariants registers all lockstake invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-power",
		TotalPowerInvariant(k))
	ir.RegisterRoute(types.ModuleName, "bucket-stake",
		BucketStakeInvariant(k))
	ir.RegisterRoute(types.ModuleName, "nonnegative-rewards",
		NonNegativeRewardsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "power-determinism",
		PowerDeterminismInvariant(k))
}

// AllInvariants runs all invariants of the lockstake module
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		invariants := []sdk.Invariant{
			TotalPowerInvariant(k),
			BucketStakeInvariant(k),
			NonNegativeRewardsInvariant(k),
			PowerDeterminismInvariant(k),
		}

		for _, invariant := range invariants {
			if res, stop := invariant(ctx); stop {
				return res, stop
			}
		}

		return "", false
	}
}

// TotalPowerInvariant checks that the stored voting-power and reward-power
// totals equal the sums of the per-account indexes.
func TotalPowerInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		votingSum := math.ZeroInt()
		err := k.VotingPowers.Walk(ctx, nil, func(key []byte, power math.Int) (stop bool, err error) {
			votingSum = votingSum.Add(power)
			return false, nil
		})
		if err != nil {
			panic(err)
		}

		totalVoting, err := k.GetTotalVotingPower(ctx)
		if err != nil {
			panic(err)
		}

		if !votingSum.Equal(totalVoting) {
			return sdk.FormatInvariant(types.ModuleName, "total-power",
				fmt.Sprintf("total voting power %s does not match per-account sum %s", totalVoting, votingSum)), true
		}

		rewardSum := math.ZeroInt()
		err = k.RewardPowers.Walk(ctx, nil, func(key []byte, power math.Int) (stop bool, err error) {
			rewardSum = rewardSum.Add(power)
			return false, nil
		})
		if err != nil {
			panic(err)
		}

		totalReward, err := k.GetTotalRewardPower(ctx)
		if err != nil {
			panic(err)
		}

		if !rewardSum.Equal(totalReward) {
			return sdk.FormatInvariant(types.ModuleName, "total-power",
				fmt.Sprintf("total reward power %s does not match per-account sum %s", totalReward, rewardSum)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "total-power",
			fmt.Sprintf("voting power total %s, reward power total %s", totalVoting, totalReward)), false
	}
}

// BucketStakeInvariant checks that the per-bucket staked totals, the sum of
// all individual stake records, and the tracked staked supply agree.
func BucketStakeInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		bucketSum := math.ZeroInt()
		err := k.Buckets.Walk(ctx, nil, func(unbondingPeriod uint64, bucket types.Bucket) (stop bool, err error) {
			if bucket.TotalStaked.IsNegative() {
				return true, fmt.Errorf("bucket %d has negative staked total %s", unbondingPeriod, bucket.TotalStaked)
			}
			bucketSum = bucketSum.Add(bucket.TotalStaked)
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "bucket-stake", err.Error()), true
		}

		bondsSum := math.ZeroInt()
		err = k.Bonds.Walk(ctx, nil, func(key collections.Pair[[]byte, uint64], info types.BondingInfo) (stop bool, err error) {
			bondsSum = bondsSum.Add(info.TotalStake())
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "bucket-stake", err.Error()), true
		}

		if !bucketSum.Equal(bondsSum) {
			return sdk.FormatInvariant(types.ModuleName, "bucket-stake",
				fmt.Sprintf("bucket sum %s does not match stake record sum %s", bucketSum, bondsSum)), true
		}

		tokenInfo, err := k.GetTokenInfo(ctx)
		if err != nil {
			panic(err)
		}

		if !bucketSum.Equal(tokenInfo.Staked) {
			return sdk.FormatInvariant(types.ModuleName, "bucket-stake",
				fmt.Sprintf("tracked staked supply %s does not match bucket sum %s", tokenInfo.Staked, bucketSum)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "bucket-stake",
			fmt.Sprintf("staked supply %s across buckets", bucketSum)), false
	}
}

// NonNegativeRewardsInvariant checks that no account's withdrawable rewards
// are negative and that the per-account sum never exceeds the tracked
// withdrawable total.
func NonNegativeRewardsInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		distribution, err := k.GetDistribution(ctx)
		if err != nil {
			panic(err)
		}

		// Accounts with reward power but no stored adjustment accrue rewards
		// too, so collect owners from both indexes.
		owners := make(map[string]sdk.AccAddress)
		err = k.RewardPowers.Walk(ctx, nil, func(key []byte, power math.Int) (stop bool, err error) {
			owners[string(key)] = sdk.AccAddress(key)
			return false, nil
		})
		if err != nil {
			panic(err)
		}
		err = k.WithdrawAdjustments.Walk(ctx, nil, func(key []byte, adjustment types.WithdrawAdjustment) (stop bool, err error) {
			owners[string(key)] = sdk.AccAddress(key)
			return false, nil
		})
		if err != nil {
			panic(err)
		}

		withdrawableSum := math.ZeroInt()
		for _, owner := range owners {
			withdrawable, err := k.WithdrawableRewards(ctx, owner)
			if err != nil {
				return sdk.FormatInvariant(types.ModuleName, "nonnegative-rewards",
					fmt.Sprintf("account %s has invalid withdrawable rewards: %s", owner, err)), true
			}
			withdrawableSum = withdrawableSum.Add(withdrawable)
		}

		if withdrawableSum.GT(distribution.WithdrawableTotal) {
			return sdk.FormatInvariant(types.ModuleName, "nonnegative-rewards",
				fmt.Sprintf("per-account withdrawable sum %s exceeds tracked total %s", withdrawableSum, distribution.WithdrawableTotal)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "nonnegative-rewards",
			fmt.Sprintf("withdrawable sum %s within total %s", withdrawableSum, distribution.WithdrawableTotal)), false
	}
}

// PowerDeterminismInvariant checks that every stake record's stored voting
// and reward powers can be recomputed from its stake and its bucket's
// multipliers.
func PowerDeterminismInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			panic(err)
		}

		records := 0
		var broken string
		err = k.Bonds.Walk(ctx, nil, func(key collections.Pair[[]byte, uint64], info types.BondingInfo) (stop bool, err error) {
			bucket, err := k.GetBucket(ctx, key.K2())
			if err != nil {
				return true, err
			}

			stake := info.TotalStake()
			votes := params.Power(stake, bucket.VotingMultiplier)
			rewards := params.Power(stake, bucket.RewardMultiplier)
			if !info.Votes.Equal(votes) || !info.Rewards.Equal(rewards) {
				broken = fmt.Sprintf(
					"record (%s, %d) stores powers (%s, %s), recomputed (%s, %s)",
					sdk.AccAddress(key.K1()), key.K2(), info.Votes, info.Rewards, votes, rewards)
				return true, nil
			}

			records++
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "power-determinism", err.Error()), true
		}
		if broken != "" {
			return sdk.FormatInvariant(types.ModuleName, "power-determinism", broken), true
		}

		return sdk.FormatInvariant(types.ModuleName, "power-determinism",
			fmt.Sprintf("%d stake records consistent", records)), false
	}
}
