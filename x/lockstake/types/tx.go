package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgServer is the transaction surface of the lockstake module. Each inbound
// command is handled to completion by exactly one method.
type MsgServer interface {
	ReceiveDelegation(ctx context.Context, msg *MsgReceiveDelegation) (*MsgReceiveDelegationResponse, error)
	Unbond(ctx context.Context, msg *MsgUnbond) (*MsgUnbondResponse, error)
	Rebond(ctx context.Context, msg *MsgRebond) (*MsgRebondResponse, error)
	Claim(ctx context.Context, msg *MsgClaim) (*MsgClaimResponse, error)
	DistributeRewards(ctx context.Context, msg *MsgDistributeRewards) (*MsgDistributeRewardsResponse, error)
	WithdrawRewards(ctx context.Context, msg *MsgWithdrawRewards) (*MsgWithdrawRewardsResponse, error)
	DelegateWithdrawal(ctx context.Context, msg *MsgDelegateWithdrawal) (*MsgDelegateWithdrawalResponse, error)
	AddObserver(ctx context.Context, msg *MsgAddObserver) (*MsgAddObserverResponse, error)
	RemoveObserver(ctx context.Context, msg *MsgRemoveObserver) (*MsgRemoveObserverResponse, error)
	UpdateAdmin(ctx context.Context, msg *MsgUpdateAdmin) (*MsgUpdateAdminResponse, error)
}

// Msg is an inbound command routed through the lockstake dispatcher. Every
// command is validated before any state is read.
type Msg interface {
	Validate() error
}

var (
	_ Msg = &MsgReceiveDelegation{}
	_ Msg = &MsgUnbond{}
	_ Msg = &MsgRebond{}
	_ Msg = &MsgClaim{}
	_ Msg = &MsgDistributeRewards{}
	_ Msg = &MsgWithdrawRewards{}
	_ Msg = &MsgDelegateWithdrawal{}
	_ Msg = &MsgAddObserver{}
	_ Msg = &MsgRemoveObserver{}
	_ Msg = &MsgUpdateAdmin{}
)

/* MsgReceiveDelegation */

// MsgReceiveDelegation is the bond notification relayed by the external token
// ledger. Sender is the token contract that forwarded the delegation;
// Delegator is the nominal account that requested it. The delegator claim
// cannot be fully trusted, so it is only used for actions in the delegator's
// favor.
type MsgReceiveDelegation struct {
	Sender          string   `json:"sender"`
	Delegator       string   `json:"delegator"`
	Amount          math.Int `json:"amount"`
	UnbondingPeriod uint64   `json:"unbonding_period"`
}

// NewMsgReceiveDelegation returns a new MsgReceiveDelegation instance
func NewMsgReceiveDelegation(sender, delegator string, amount math.Int, unbondingPeriod uint64) *MsgReceiveDelegation {
	return &MsgReceiveDelegation{
		Sender:          sender,
		Delegator:       delegator,
		Amount:          amount,
		UnbondingPeriod: unbondingPeriod,
	}
}

// Validate performs basic MsgReceiveDelegation message validation.
func (msg MsgReceiveDelegation) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if _, err := sdk.AccAddressFromBech32(msg.Delegator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid delegator address: %s", err)
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.ErrInvalidRequest.Wrap("delegation amount must be positive")
	}

	return nil
}

/* MsgUnbond */

// MsgUnbond begins the timed release of previously bonded stake.
type MsgUnbond struct {
	Sender          string   `json:"sender"`
	Amount          math.Int `json:"amount"`
	UnbondingPeriod uint64   `json:"unbonding_period"`
}

// NewMsgUnbond returns a new MsgUnbond instance
func NewMsgUnbond(sender string, amount math.Int, unbondingPeriod uint64) *MsgUnbond {
	return &MsgUnbond{
		Sender:          sender,
		Amount:          amount,
		UnbondingPeriod: unbondingPeriod,
	}
}

// Validate performs basic MsgUnbond message validation.
func (msg MsgUnbond) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.ErrInvalidRequest.Wrap("unbond amount must be positive")
	}

	return nil
}

/* MsgRebond */

// MsgRebond moves stake directly between two unbonding-period buckets.
type MsgRebond struct {
	Sender   string   `json:"sender"`
	Amount   math.Int `json:"amount"`
	BondFrom uint64   `json:"bond_from"`
	BondTo   uint64   `json:"bond_to"`
}

// NewMsgRebond returns a new MsgRebond instance
func NewMsgRebond(sender string, amount math.Int, bondFrom, bondTo uint64) *MsgRebond {
	return &MsgRebond{
		Sender:   sender,
		Amount:   amount,
		BondFrom: bondFrom,
		BondTo:   bondTo,
	}
}

// Validate performs basic MsgRebond message validation.
func (msg MsgRebond) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.ErrInvalidRequest.Wrap("rebond amount must be positive")
	}

	if msg.BondFrom == msg.BondTo {
		return ErrSameUnbondingRebond
	}

	return nil
}

/* MsgClaim */

// MsgClaim releases every matured claim of the sender.
type MsgClaim struct {
	Sender string `json:"sender"`
}

// NewMsgClaim returns a new MsgClaim instance
func NewMsgClaim(sender string) *MsgClaim {
	return &MsgClaim{Sender: sender}
}

// Validate performs basic MsgClaim message validation.
func (msg MsgClaim) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	return nil
}

/* MsgDistributeRewards */

// MsgDistributeRewards distributes rewards received since the previous
// distribution to all current reward-power holders. Source optionally labels
// whom the distribution is attributed to; it defaults to the sender.
type MsgDistributeRewards struct {
	Sender string `json:"sender"`
	Source string `json:"source,omitempty"`
}

// NewMsgDistributeRewards returns a new MsgDistributeRewards instance
func NewMsgDistributeRewards(sender, source string) *MsgDistributeRewards {
	return &MsgDistributeRewards{
		Sender: sender,
		Source: source,
	}
}

// Validate performs basic MsgDistributeRewards message validation.
func (msg MsgDistributeRewards) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if msg.Source != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Source); err != nil {
			return sdkerrors.ErrInvalidAddress.Wrapf("invalid source address: %s", err)
		}
	}

	return nil
}

/* MsgWithdrawRewards */

// MsgWithdrawRewards withdraws the accrued rewards of Owner (defaulting to
// the sender) to Receiver (defaulting to the sender). Only the owner or the
// owner's registered withdrawal delegate may send it.
type MsgWithdrawRewards struct {
	Sender   string `json:"sender"`
	Owner    string `json:"owner,omitempty"`
	Receiver string `json:"receiver,omitempty"`
}

// NewMsgWithdrawRewards returns a new MsgWithdrawRewards instance
func NewMsgWithdrawRewards(sender, owner, receiver string) *MsgWithdrawRewards {
	return &MsgWithdrawRewards{
		Sender:   sender,
		Owner:    owner,
		Receiver: receiver,
	}
}

// Validate performs basic MsgWithdrawRewards message validation.
func (msg MsgWithdrawRewards) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if msg.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
			return sdkerrors.ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
		}
	}

	if msg.Receiver != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Receiver); err != nil {
			return sdkerrors.ErrInvalidAddress.Wrapf("invalid receiver address: %s", err)
		}
	}

	return nil
}

/* MsgDelegateWithdrawal */

// MsgDelegateWithdrawal registers the one account allowed to trigger reward
// withdrawal on the sender's behalf. It moves no funds by itself.
type MsgDelegateWithdrawal struct {
	Sender   string `json:"sender"`
	Delegate string `json:"delegate"`
}

// NewMsgDelegateWithdrawal returns a new MsgDelegateWithdrawal instance
func NewMsgDelegateWithdrawal(sender, delegate string) *MsgDelegateWithdrawal {
	return &MsgDelegateWithdrawal{
		Sender:   sender,
		Delegate: delegate,
	}
}

// Validate performs basic MsgDelegateWithdrawal message validation.
func (msg MsgDelegateWithdrawal) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if _, err := sdk.AccAddressFromBech32(msg.Delegate); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid delegate address: %s", err)
	}

	return nil
}

/* MsgAddObserver */

// MsgAddObserver registers an observer contract notified of voting-power
// changes. Admin only.
type MsgAddObserver struct {
	Sender string `json:"sender"`
	Addr   string `json:"addr"`
}

// NewMsgAddObserver returns a new MsgAddObserver instance
func NewMsgAddObserver(sender, addr string) *MsgAddObserver {
	return &MsgAddObserver{
		Sender: sender,
		Addr:   addr,
	}
}

// Validate performs basic MsgAddObserver message validation.
func (msg MsgAddObserver) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if _, err := sdk.AccAddressFromBech32(msg.Addr); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid observer address: %s", err)
	}

	return nil
}

/* MsgRemoveObserver */

// MsgRemoveObserver removes a registered observer. Admin only.
type MsgRemoveObserver struct {
	Sender string `json:"sender"`
	Addr   string `json:"addr"`
}

// NewMsgRemoveObserver returns a new MsgRemoveObserver instance
func NewMsgRemoveObserver(sender, addr string) *MsgRemoveObserver {
	return &MsgRemoveObserver{
		Sender: sender,
		Addr:   addr,
	}
}

// Validate performs basic MsgRemoveObserver message validation.
func (msg MsgRemoveObserver) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if _, err := sdk.AccAddressFromBech32(msg.Addr); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid observer address: %s", err)
	}

	return nil
}

/* MsgUpdateAdmin */

// MsgUpdateAdmin hands admin rights to a new address, or clears them when
// Admin is empty. Admin only.
type MsgUpdateAdmin struct {
	Sender string `json:"sender"`
	Admin  string `json:"admin,omitempty"`
}

// NewMsgUpdateAdmin returns a new MsgUpdateAdmin instance
func NewMsgUpdateAdmin(sender, admin string) *MsgUpdateAdmin {
	return &MsgUpdateAdmin{
		Sender: sender,
		Admin:  admin,
	}
}

// Validate performs basic MsgUpdateAdmin message validation.
func (msg MsgUpdateAdmin) Validate() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid sender address: %s", err)
	}

	if msg.Admin != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Admin); err != nil {
			return sdkerrors.ErrInvalidAddress.Wrapf("invalid admin address: %s", err)
		}
	}

	return nil
}

/* Responses */

type MsgReceiveDelegationResponse struct{}

type MsgUnbondResponse struct {
	// CompletionTime is when the created claim matures.
	CompletionTime string `json:"completion_time"`
}

type MsgRebondResponse struct{}

type MsgClaimResponse struct {
	Released math.Int `json:"released"`
}

type MsgDistributeRewardsResponse struct {
	Amount math.Int `json:"amount"`
}

type MsgWithdrawRewardsResponse struct {
	Reward math.Int `json:"reward"`
}

type MsgDelegateWithdrawalResponse struct{}

type MsgAddObserverResponse struct{}

type MsgRemoveObserverResponse struct{}

type MsgUpdateAdminResponse struct{}
