package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// x/lockstake module sentinel errors
var (
	ErrNoUnbondingPeriod         = errorsmod.Register(ModuleName, 2, "no unbonding period found")
	ErrSameUnbondingRebond       = errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "cannot rebond to the same unbonding period")
	ErrNothingToClaim            = errorsmod.Register(ModuleName, 4, "no claims that can be released currently")
	ErrNoMembers                 = errorsmod.Register(ModuleName, 5, "no members to distribute tokens to")
	ErrInvalidTokenContract      = errorsmod.Register(ModuleName, 6, "sender's token contract address does not match config")
	ErrInsufficientStake         = errorsmod.Wrap(sdkerrors.ErrInsufficientFunds, "cannot subtract more than the unlocked stake")
	ErrInvalidRewards            = errorsmod.Register(ModuleName, 8, "withdrawable rewards became negative; correction tracking is broken")
	ErrObserverAlreadyRegistered = errorsmod.Register(ModuleName, 9, "observer hook already registered")
	ErrObserverNotRegistered     = errorsmod.Register(ModuleName, 10, "observer hook not registered")
	ErrNoAdmin                   = errorsmod.Register(ModuleName, 11, "no admin set")
)
