package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BucketConfig is the genesis-time configuration of one unbonding-period
// bucket.
type BucketConfig struct {
	// UnbondingPeriod is the bucket's release delay in seconds.
	UnbondingPeriod uint64 `json:"unbonding_period"`
	// VotingMultiplier scales stake into voting power.
	VotingMultiplier math.LegacyDec `json:"voting_multiplier"`
	// RewardMultiplier scales stake into reward power.
	RewardMultiplier math.LegacyDec `json:"reward_multiplier"`
}

// GenesisState is the instantiation state of the lockstake ledger. Live
// stake/claim/reward state is not part of it; state migration is a host
// concern.
type GenesisState struct {
	Params    Params         `json:"params"`
	Buckets   []BucketConfig `json:"buckets"`
	Admin     string         `json:"admin,omitempty"`
	Observers []string       `json:"observers,omitempty"`
}

// NewGenesisState creates a new GenesisState object
func NewGenesisState(params Params, buckets []BucketConfig, admin string, observers []string) *GenesisState {
	return &GenesisState{
		Params:    params,
		Buckets:   buckets,
		Admin:     admin,
		Observers: observers,
	}
}

// ValidateGenesis validates the provided genesis state to ensure the
// expected invariants hold.
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	if len(data.Buckets) == 0 {
		return fmt.Errorf("at least one unbonding period must be configured")
	}

	seen := make(map[uint64]bool, len(data.Buckets))
	for _, bucket := range data.Buckets {
		if seen[bucket.UnbondingPeriod] {
			return fmt.Errorf("duplicated unbonding period: %d", bucket.UnbondingPeriod)
		}
		seen[bucket.UnbondingPeriod] = true

		if err := NewBucket(bucket.VotingMultiplier, bucket.RewardMultiplier).Validate(); err != nil {
			return fmt.Errorf("invalid bucket %d: %w", bucket.UnbondingPeriod, err)
		}
	}

	if data.Admin != "" {
		if _, err := sdk.AccAddressFromBech32(data.Admin); err != nil {
			return fmt.Errorf("invalid admin address: %w", err)
		}
	}

	seenObservers := make(map[string]bool, len(data.Observers))
	for _, observer := range data.Observers {
		if _, err := sdk.AccAddressFromBech32(observer); err != nil {
			return fmt.Errorf("invalid observer address: %w", err)
		}
		if seenObservers[observer] {
			return fmt.Errorf("duplicated observer: %s", observer)
		}
		seenObservers[observer] = true
	}

	return nil
}
