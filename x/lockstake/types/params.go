package types

import (
	"fmt"

	"cosmossdk.io/math"
	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default parameter values
var (
	DefaultTokensPerPower = math.NewInt(1_000)
	DefaultMinBond        = math.NewInt(1_000)
)

// Params defines the static configuration of the staking ledger.
type Params struct {
	// TokenContract is the address of the external fungible-token ledger
	// that custodies the staked balances.
	TokenContract string `json:"token_contract" yaml:"token_contract"`
	// TokensPerPower is the amount of multiplied stake worth one unit of
	// voting/reward power.
	TokensPerPower math.Int `json:"tokens_per_power" yaml:"tokens_per_power"`
	// MinBond is the minimum total stake per (account, period) record that
	// yields non-zero power. It is forced to at least 1 so that zero stake
	// always maps to zero power.
	MinBond math.Int `json:"min_bond" yaml:"min_bond"`
}

// NewParams creates a new Params instance. MinBond is clamped to at least 1.
func NewParams(tokenContract string, tokensPerPower, minBond math.Int) Params {
	if minBond.LT(math.OneInt()) {
		minBond = math.OneInt()
	}

	return Params{
		TokenContract:  tokenContract,
		TokensPerPower: tokensPerPower,
		MinBond:        minBond,
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate performs basic validation on lockstake parameters
func (p Params) Validate() error {
	if _, err := sdk.AccAddressFromBech32(p.TokenContract); err != nil {
		return errors.Wrap(err, "invalid token contract address")
	}

	if p.TokensPerPower.IsNil() || !p.TokensPerPower.IsPositive() {
		return fmt.Errorf("TokensPerPower must be bigger than 0")
	}

	if p.MinBond.IsNil() || p.MinBond.LT(math.OneInt()) {
		return fmt.Errorf("MinBond must be at least 1")
	}

	return nil
}

// Power converts a stake amount into voting or reward power. Records below
// MinBond carry no power at all; otherwise the stake is scaled by the bucket
// multiplier and divided by TokensPerPower, truncating.
func (p Params) Power(stake math.Int, multiplier math.LegacyDec) math.Int {
	if stake.LT(p.MinBond) {
		return math.ZeroInt()
	}

	return multiplier.MulInt(stake).TruncateInt().Quo(p.TokensPerPower)
}

// Bucket is the per-unbonding-period staking configuration, keyed by the
// period length in seconds.
type Bucket struct {
	// VotingMultiplier scales stake into voting power.
	VotingMultiplier math.LegacyDec `json:"voting_multiplier"`
	// RewardMultiplier scales stake into reward power.
	RewardMultiplier math.LegacyDec `json:"reward_multiplier"`
	// TotalStaked is the total amount of tokens staked to this period.
	TotalStaked math.Int `json:"total_staked"`
}

// NewBucket creates an empty bucket with the given multipliers.
func NewBucket(votingMultiplier, rewardMultiplier math.LegacyDec) Bucket {
	return Bucket{
		VotingMultiplier: votingMultiplier,
		RewardMultiplier: rewardMultiplier,
		TotalStaked:      math.ZeroInt(),
	}
}

// Validate performs basic validation on a bucket config
func (b Bucket) Validate() error {
	if b.VotingMultiplier.IsNil() || b.VotingMultiplier.IsNegative() {
		return fmt.Errorf("voting multiplier must not be negative")
	}

	if b.RewardMultiplier.IsNil() || b.RewardMultiplier.IsNegative() {
		return fmt.Errorf("reward multiplier must not be negative")
	}

	if b.TotalStaked.IsNil() || b.TotalStaked.IsNegative() {
		return fmt.Errorf("total staked must not be negative")
	}

	return nil
}
