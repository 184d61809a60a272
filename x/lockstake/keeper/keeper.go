package keeper

import (
	"context"
	"errors"
	"slices"

	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

// Keeper of the lockstake store
type Keeper struct {
	storeService corestoretypes.KVStoreService
	tokenKeeper  types.TokenKeeper
	outbox       *types.Outbox

	// ledgerAddr is this ledger's own address on the external token ledger,
	// used to read the custodied balance during reward distribution.
	ledgerAddr string

	Schema collections.Schema

	Params    collections.Item[types.Params]
	Admin     collections.Item[string]
	Observers collections.Item[[]string]

	Buckets   collections.Map[uint64, types.Bucket]
	Bonds     collections.Map[collections.Pair[[]byte, uint64], types.BondingInfo]
	Claims    collections.Map[[]byte, types.Claims]
	TokenInfo collections.Item[types.TokenInfo]

	VotingPowers                collections.Map[[]byte, math.Int]
	VotingPowerCheckpoints      collections.Map[collections.Pair[[]byte, int64], math.Int]
	TotalVotingPower            collections.Item[math.Int]
	TotalVotingPowerCheckpoints collections.Map[int64, math.Int]

	RewardPowers        collections.Map[[]byte, math.Int]
	TotalRewardPower    collections.Item[math.Int]
	Distribution        collections.Item[types.Distribution]
	WithdrawAdjustments collections.Map[[]byte, types.WithdrawAdjustment]
}

// NewKeeper creates a new lockstake Keeper instance
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	tk types.TokenKeeper,
	outbox *types.Outbox,
	ledgerAddr string,
) *Keeper {
	if _, err := sdk.AccAddressFromBech32(ledgerAddr); err != nil {
		panic("ledger address is not a valid acc address")
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		storeService: storeService,
		tokenKeeper:  tk,
		outbox:       outbox,
		ledgerAddr:   ledgerAddr,

		Params:    collections.NewItem(sb, types.ParamsKey, "params", types.JSONValue[types.Params]("params")),
		Admin:     collections.NewItem(sb, types.AdminKey, "admin", collections.StringValue),
		Observers: collections.NewItem(sb, types.ObserversKey, "observers", types.JSONValue[[]string]("observers")),

		Buckets:   collections.NewMap(sb, types.BucketsPrefix, "buckets", collections.Uint64Key, types.JSONValue[types.Bucket]("bucket")),
		Bonds:     collections.NewMap(sb, types.BondsPrefix, "bonds", collections.PairKeyCodec(collections.BytesKey, collections.Uint64Key), types.JSONValue[types.BondingInfo]("bonding_info")),
		Claims:    collections.NewMap(sb, types.ClaimsPrefix, "claims", collections.BytesKey, types.JSONValue[types.Claims]("claims")),
		TokenInfo: collections.NewItem(sb, types.TokenInfoKey, "token_info", types.JSONValue[types.TokenInfo]("token_info")),

		VotingPowers:                collections.NewMap(sb, types.VotingPowersPrefix, "voting_powers", collections.BytesKey, sdk.IntValue),
		VotingPowerCheckpoints:      collections.NewMap(sb, types.VotingPowerCheckpointsPrefix, "voting_power_checkpoints", collections.PairKeyCodec(collections.BytesKey, collections.Int64Key), sdk.IntValue),
		TotalVotingPower:            collections.NewItem(sb, types.TotalVotingPowerKey, "total_voting_power", sdk.IntValue),
		TotalVotingPowerCheckpoints: collections.NewMap(sb, types.TotalVotingPowerCheckpointsPrefix, "total_voting_power_checkpoints", collections.Int64Key, sdk.IntValue),

		RewardPowers:        collections.NewMap(sb, types.RewardPowersPrefix, "reward_powers", collections.BytesKey, sdk.IntValue),
		TotalRewardPower:    collections.NewItem(sb, types.TotalRewardPowerKey, "total_reward_power", sdk.IntValue),
		Distribution:        collections.NewItem(sb, types.DistributionKey, "distribution", types.JSONValue[types.Distribution]("distribution")),
		WithdrawAdjustments: collections.NewMap(sb, types.WithdrawAdjustmentsPrefix, "withdraw_adjustments", collections.BytesKey, types.JSONValue[types.WithdrawAdjustment]("withdraw_adjustment")),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// Outbox returns the outbound instruction queue the host drains after each
// successful command.
func (k Keeper) Outbox() *types.Outbox {
	return k.outbox
}

// LedgerAddress returns the ledger's own address on the token contract.
func (k Keeper) LedgerAddress() string {
	return k.ledgerAddr
}

// GetParams returns the module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.Params.Get(ctx)
}

// GetBucket returns the bucket config for an unbonding period, or
// ErrNoUnbondingPeriod when none is configured.
func (k Keeper) GetBucket(ctx context.Context, unbondingPeriod uint64) (types.Bucket, error) {
	bucket, err := k.Buckets.Get(ctx, unbondingPeriod)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.Bucket{}, errorsmod.Wrapf(types.ErrNoUnbondingPeriod, "%d", unbondingPeriod)
	} else if err != nil {
		return types.Bucket{}, err
	}

	return bucket, nil
}

// GetBondingInfo returns the (account, period) stake record, defaulting to an
// empty record. Records are never deleted, so a zero record and a missing one
// are equivalent.
func (k Keeper) GetBondingInfo(ctx context.Context, addr sdk.AccAddress, unbondingPeriod uint64) (types.BondingInfo, error) {
	info, err := k.Bonds.Get(ctx, collections.Join(addr.Bytes(), unbondingPeriod))
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return types.NewBondingInfo(), nil
	} else if err != nil {
		return types.BondingInfo{}, err
	}

	return info, nil
}

// GetAdmin returns the current admin address, empty when none is set.
func (k Keeper) GetAdmin(ctx context.Context) (string, error) {
	admin, err := k.Admin.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return admin, nil
}

// assertAdmin fails unless sender is the current admin.
func (k Keeper) assertAdmin(ctx context.Context, sender string) error {
	admin, err := k.GetAdmin(ctx)
	if err != nil {
		return err
	}

	if admin == "" {
		return types.ErrNoAdmin
	}

	if admin != sender {
		return errorsmod.Wrap(sdkerrors.ErrUnauthorized, "caller is not the admin")
	}

	return nil
}

// UpdateAdmin hands admin rights over to newAdmin, or clears them when
// newAdmin is empty. Only the current admin may call it.
func (k Keeper) UpdateAdmin(ctx context.Context, sender, newAdmin string) error {
	if err := k.assertAdmin(ctx, sender); err != nil {
		return err
	}

	if newAdmin == "" {
		if err := k.Admin.Remove(ctx); err != nil {
			return err
		}
	} else if err := k.Admin.Set(ctx, newAdmin); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUpdateAdmin,
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeyAdmin, newAdmin),
		),
	)

	return nil
}

// GetObservers returns the ordered observer hook list.
func (k Keeper) GetObservers(ctx context.Context) ([]string, error) {
	observers, err := k.Observers.Get(ctx)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return observers, nil
}

// AddObserver registers an observer address notified of voting-power diffs.
// Admin only; re-adding an existing observer fails.
func (k Keeper) AddObserver(ctx context.Context, sender, addr string) error {
	if err := k.assertAdmin(ctx, sender); err != nil {
		return err
	}

	observers, err := k.GetObservers(ctx)
	if err != nil {
		return err
	}

	if slices.Contains(observers, addr) {
		return errorsmod.Wrap(types.ErrObserverAlreadyRegistered, addr)
	}

	if err := k.Observers.Set(ctx, append(observers, addr)); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddObserver,
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeyObserver, addr),
		),
	)

	return nil
}

// RemoveObserver drops a registered observer. Admin only; removing a
// non-member fails.
func (k Keeper) RemoveObserver(ctx context.Context, sender, addr string) error {
	if err := k.assertAdmin(ctx, sender); err != nil {
		return err
	}

	observers, err := k.GetObservers(ctx)
	if err != nil {
		return err
	}

	idx := slices.Index(observers, addr)
	if idx < 0 {
		return errorsmod.Wrap(types.ErrObserverNotRegistered, addr)
	}

	if err := k.Observers.Set(ctx, slices.Delete(observers, idx, idx+1)); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveObserver,
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeyObserver, addr),
		),
	)

	return nil
}
