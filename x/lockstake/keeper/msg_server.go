package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

type msgServer struct {
	*Keeper
}

var _ types.MsgServer = msgServer{}

// NewMsgServerImpl returns an implementation of the lockstake MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(k *Keeper) types.MsgServer {
	return &msgServer{k}
}

// ReceiveDelegation handles the bond notification relayed by the token
// ledger. The sender is the relaying contract; the delegator named inside the
// message is credited.
func (ms msgServer) ReceiveDelegation(ctx context.Context, msg *types.MsgReceiveDelegation) (*types.MsgReceiveDelegationResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	delegator, err := sdk.AccAddressFromBech32(msg.Delegator)
	if err != nil {
		return nil, err
	}

	if err := ms.Bond(ctx, msg.Sender, delegator, msg.Amount, msg.UnbondingPeriod); err != nil {
		return nil, err
	}

	return &types.MsgReceiveDelegationResponse{}, nil
}

func (ms msgServer) Unbond(ctx context.Context, msg *types.MsgUnbond) (*types.MsgUnbondResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}

	completionTime, err := ms.Keeper.Unbond(ctx, sender, msg.Amount, msg.UnbondingPeriod)
	if err != nil {
		return nil, err
	}

	return &types.MsgUnbondResponse{
		CompletionTime: completionTime.UTC().Format(time.RFC3339),
	}, nil
}

func (ms msgServer) Rebond(ctx context.Context, msg *types.MsgRebond) (*types.MsgRebondResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}

	if err := ms.Keeper.Rebond(ctx, sender, msg.Amount, msg.BondFrom, msg.BondTo); err != nil {
		return nil, err
	}

	return &types.MsgRebondResponse{}, nil
}

func (ms msgServer) Claim(ctx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}

	released, err := ms.Keeper.Claim(ctx, sender)
	if err != nil {
		return nil, err
	}

	return &types.MsgClaimResponse{Released: released}, nil
}

func (ms msgServer) DistributeRewards(ctx context.Context, msg *types.MsgDistributeRewards) (*types.MsgDistributeRewardsResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	amount, err := ms.Keeper.DistributeRewards(ctx, msg.Sender, msg.Source)
	if err != nil {
		return nil, err
	}

	return &types.MsgDistributeRewardsResponse{Amount: amount}, nil
}

func (ms msgServer) WithdrawRewards(ctx context.Context, msg *types.MsgWithdrawRewards) (*types.MsgWithdrawRewardsResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}

	// Both the owner and the receiver default to the sender.
	owner := sender
	if msg.Owner != "" {
		if owner, err = sdk.AccAddressFromBech32(msg.Owner); err != nil {
			return nil, err
		}
	}

	receiver := sender
	if msg.Receiver != "" {
		if receiver, err = sdk.AccAddressFromBech32(msg.Receiver); err != nil {
			return nil, err
		}
	}

	reward, err := ms.Keeper.WithdrawRewards(ctx, sender, owner, receiver)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawRewardsResponse{Reward: reward}, nil
}

func (ms msgServer) DelegateWithdrawal(ctx context.Context, msg *types.MsgDelegateWithdrawal) (*types.MsgDelegateWithdrawalResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}

	delegate, err := sdk.AccAddressFromBech32(msg.Delegate)
	if err != nil {
		return nil, err
	}

	if err := ms.Keeper.DelegateWithdrawal(ctx, sender, delegate); err != nil {
		return nil, err
	}

	return &types.MsgDelegateWithdrawalResponse{}, nil
}

func (ms msgServer) AddObserver(ctx context.Context, msg *types.MsgAddObserver) (*types.MsgAddObserverResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if err := ms.Keeper.AddObserver(ctx, msg.Sender, msg.Addr); err != nil {
		return nil, err
	}

	return &types.MsgAddObserverResponse{}, nil
}

func (ms msgServer) RemoveObserver(ctx context.Context, msg *types.MsgRemoveObserver) (*types.MsgRemoveObserverResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if err := ms.Keeper.RemoveObserver(ctx, msg.Sender, msg.Addr); err != nil {
		return nil, err
	}

	return &types.MsgRemoveObserverResponse{}, nil
}

func (ms msgServer) UpdateAdmin(ctx context.Context, msg *types.MsgUpdateAdmin) (*types.MsgUpdateAdminResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if err := ms.Keeper.UpdateAdmin(ctx, msg.Sender, msg.Admin); err != nil {
		return nil, err
	}

	return &types.MsgUpdateAdminResponse{}, nil
}

// Dispatch routes an inbound command to its handler. Unknown command types
// are rejected.
func Dispatch(ctx context.Context, ms types.MsgServer, msg types.Msg) (any, error) {
	switch msg := msg.(type) {
	case *types.MsgReceiveDelegation:
		return ms.ReceiveDelegation(ctx, msg)
	case *types.MsgUnbond:
		return ms.Unbond(ctx, msg)
	case *types.MsgRebond:
		return ms.Rebond(ctx, msg)
	case *types.MsgClaim:
		return ms.Claim(ctx, msg)
	case *types.MsgDistributeRewards:
		return ms.DistributeRewards(ctx, msg)
	case *types.MsgWithdrawRewards:
		return ms.WithdrawRewards(ctx, msg)
	case *types.MsgDelegateWithdrawal:
		return ms.DelegateWithdrawal(ctx, msg)
	case *types.MsgAddObserver:
		return ms.AddObserver(ctx, msg)
	case *types.MsgRemoveObserver:
		return ms.RemoveObserver(ctx, msg)
	case *types.MsgUpdateAdmin:
		return ms.UpdateAdmin(ctx, msg)
	default:
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized lockstake message type: %T", msg)
	}
}
