package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// GetClaims returns an account's claim queue, defaulting to empty.
func (k Keeper) GetClaims(ctx context.Context, addr sdk.AccAddress) (types.Claims, error) {
	claims, err := k.Claims.Get(ctx, addr.Bytes())
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return claims, nil
}

// CreateClaim queues a claim for addr maturing at releaseAt.
func (k Keeper) CreateClaim(ctx context.Context, addr sdk.AccAddress, amount math.Int, releaseAt time.Time) error {
	claims, err := k.GetClaims(ctx, addr)
	if err != nil {
		return err
	}

	return k.Claims.Set(ctx, addr.Bytes(), claims.Add(amount, releaseAt))
}

// Claim releases every matured claim of the sender, queues an undelegate
// instruction for the released amount, and fails when nothing has matured
// yet.
func (k Keeper) Claim(ctx context.Context, sender sdk.AccAddress) (math.Int, error) {
	claims, err := k.GetClaims(ctx, sender)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	released, pending := claims.Release(sdkCtx.BlockTime())
	if released.IsZero() {
		return math.Int{}, types.ErrNothingToClaim
	}

	if len(pending) == 0 {
		if err := k.Claims.Remove(ctx, sender.Bytes()); err != nil {
			return math.Int{}, err
		}
	} else if err := k.Claims.Set(ctx, sender.Bytes(), pending); err != nil {
		return math.Int{}, err
	}

	tokenInfo, err := k.GetTokenInfo(ctx)
	if err != nil {
		return math.Int{}, err
	}
	tokenInfo.Unbonding = saturatingSub(tokenInfo.Unbonding, released)
	if err := k.TokenInfo.Set(ctx, tokenInfo); err != nil {
		return math.Int{}, err
	}

	k.outbox.Append(types.MsgUndelegate{
		Recipient: sender.String(),
		Amount:    released,
	})

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeClaim,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, released.String()),
		),
	)

	return released, nil
}
