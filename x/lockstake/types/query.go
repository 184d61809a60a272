package types

import (
	"cosmossdk.io/math"
)

// StakedResponse reports one (account, period) record's total stake and the
// portion still rebond-locked at query time.
type StakedResponse struct {
	Stake           math.Int `json:"stake"`
	TotalLocked     math.Int `json:"total_locked"`
	UnbondingPeriod uint64   `json:"unbonding_period"`
	TokenContract   string   `json:"token_contract"`
}

// AllStakedResponse lists an account's records across every configured bucket.
type AllStakedResponse struct {
	Stakes []StakedResponse `json:"stakes"`
}

type TotalStakedResponse struct {
	TotalStaked math.Int `json:"total_staked"`
}

type TotalUnbondingResponse struct {
	TotalUnbonding math.Int `json:"total_unbonding"`
}

// BondingPeriodInfo is one bucket's configuration plus its staked total.
type BondingPeriodInfo struct {
	UnbondingPeriod  uint64         `json:"unbonding_period"`
	VotingMultiplier math.LegacyDec `json:"voting_multiplier"`
	RewardMultiplier math.LegacyDec `json:"reward_multiplier"`
	TotalStaked      math.Int       `json:"total_staked"`
}

type BondingInfoResponse struct {
	Bonding []BondingPeriodInfo `json:"bonding"`
}

type ClaimsResponse struct {
	Claims Claims `json:"claims"`
}

type VotingPowerAtHeightResponse struct {
	Power  math.Int `json:"power"`
	Height int64    `json:"height"`
}

type TotalPowerAtHeightResponse struct {
	Power  math.Int `json:"power"`
	Height int64    `json:"height"`
}

type RewardsResponse struct {
	Rewards math.Int `json:"rewards"`
}

type TotalRewardsResponse struct {
	Rewards math.Int `json:"rewards"`
}

type WithdrawableRewardsResponse struct {
	Rewards math.Int `json:"rewards"`
}

type DistributedRewardsResponse struct {
	Distributed  math.Int `json:"distributed"`
	Withdrawable math.Int `json:"withdrawable"`
}

type UndistributedRewardsResponse struct {
	Rewards math.Int `json:"rewards"`
}

type DelegatedResponse struct {
	Delegated string `json:"delegated"`
}

// WithdrawAdjustmentDataResponse exposes an account's raw reward-accounting
// record for debugging and state inspection.
type WithdrawAdjustmentDataResponse struct {
	SharesCorrection math.Int `json:"shares_correction"`
	WithdrawnRewards math.Int `json:"withdrawn_rewards"`
	Delegate         string   `json:"delegate"`
}

type AdminResponse struct {
	Admin string `json:"admin,omitempty"`
}

type ObserversResponse struct {
	Observers []string `json:"observers"`
}
