package types

// lockstake module event types
const (
	EventTypeBond               = "bond"
	EventTypeUnbond             = "unbond"
	EventTypeRebond             = "rebond"
	EventTypeClaim              = "claim"
	EventTypeDistributeRewards  = "distribute_rewards"
	EventTypeWithdrawRewards    = "withdraw_rewards"
	EventTypeDelegateWithdrawal = "delegate_withdrawal"
	EventTypeAddObserver        = "add_observer"
	EventTypeRemoveObserver     = "remove_observer"
	EventTypeUpdateAdmin        = "update_admin"

	AttributeKeySender          = "sender"
	AttributeKeyOwner           = "owner"
	AttributeKeyReceiver        = "receiver"
	AttributeKeyAmount          = "amount"
	AttributeKeyReward          = "reward"
	AttributeKeyUnbondingPeriod = "unbonding_period"
	AttributeKeyBondFrom        = "bond_from"
	AttributeKeyBondTo          = "bond_to"
	AttributeKeyDelegate        = "delegate"
	AttributeKeyObserver        = "observer"
	AttributeKeyAdmin           = "admin"
	AttributeValueCategory      = ModuleName
)
