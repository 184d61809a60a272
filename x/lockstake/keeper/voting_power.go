package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetVotingPower returns an account's current voting power, defaulting to
// zero.
func (k Keeper) GetVotingPower(ctx context.Context, addr sdk.AccAddress) (math.Int, error) {
	power, err := k.VotingPowers.Get(ctx, addr.Bytes())
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	} else if err != nil {
		return math.Int{}, err
	}

	return power, nil
}

// GetTotalVotingPower returns the sum of all voting powers, defaulting to
// zero.
func (k Keeper) GetTotalVotingPower(ctx context.Context) (math.Int, error) {
	total, err := k.TotalVotingPower.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	} else if err != nil {
		return math.Int{}, err
	}

	return total, nil
}

// GetVotingPowerAtHeight returns an account's voting power as of the given
// height. Powers change at the end of the block they were written in, so the
// checkpoint written at exactly this height counts. An account with no
// checkpoint at or before the height has zero power.
func (k Keeper) GetVotingPowerAtHeight(ctx context.Context, addr sdk.AccAddress, height int64) (math.Int, error) {
	power := math.ZeroInt()
	rng := collections.NewPrefixedPairRange[[]byte, int64](addr.Bytes()).
		EndInclusive(height).
		Descending()
	err := k.VotingPowerCheckpoints.Walk(ctx, rng, func(key collections.Pair[[]byte, int64], value math.Int) (stop bool, err error) {
		power = value
		return true, nil
	})
	if err != nil {
		return math.Int{}, err
	}

	return power, nil
}

// GetTotalVotingPowerAtHeight returns the total voting power as of the given
// height, zero before the first checkpoint.
func (k Keeper) GetTotalVotingPowerAtHeight(ctx context.Context, height int64) (math.Int, error) {
	total := math.ZeroInt()
	rng := new(collections.Range[int64]).
		EndInclusive(height).
		Descending()
	err := k.TotalVotingPowerCheckpoints.Walk(ctx, rng, func(key int64, value math.Int) (stop bool, err error) {
		total = value
		return true, nil
	})
	if err != nil {
		return math.Int{}, err
	}

	return total, nil
}
