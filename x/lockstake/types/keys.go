package types

const (
	// ModuleName is the name of the lockstake module
	ModuleName = "lockstake"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the lockstake module
	RouterKey = ModuleName
)

var (
	// Keys for store prefixes
	ParamsKey    = []byte{0x01} // key for module parameters
	AdminKey     = []byte{0x02} // key for the admin address
	ObserversKey = []byte{0x03} // key for the ordered observer hook list

	BucketsPrefix = []byte{0x11} // prefix for per-unbonding-period bucket configs
	BondsPrefix   = []byte{0x12} // prefix for (account, period) bonding records
	ClaimsPrefix  = []byte{0x13} // prefix for per-account claim queues
	TokenInfoKey  = []byte{0x14} // key for the staked/unbonding totals

	VotingPowersPrefix                = []byte{0x21} // prefix for current voting power by account
	VotingPowerCheckpointsPrefix      = []byte{0x22} // prefix for (account, height) voting power checkpoints
	TotalVotingPowerKey               = []byte{0x23} // key for the current total voting power
	TotalVotingPowerCheckpointsPrefix = []byte{0x24} // prefix for height-indexed total voting power

	RewardPowersPrefix        = []byte{0x31} // prefix for current reward power by account
	TotalRewardPowerKey       = []byte{0x32} // key for the current total reward power
	DistributionKey           = []byte{0x33} // key for the distribution pool singleton
	WithdrawAdjustmentsPrefix = []byte{0x34} // prefix for per-account withdraw adjustments
)
