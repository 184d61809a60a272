package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

var testTokenContract = sdk.AccAddress("token_contract______").String()

func TestNewParamsClampsMinBond(t *testing.T) {
	params := types.NewParams(testTokenContract, math.NewInt(1_000), math.ZeroInt())
	require.Equal(t, math.OneInt(), params.MinBond)

	params = types.NewParams(testTokenContract, math.NewInt(1_000), math.NewInt(5_000))
	require.Equal(t, math.NewInt(5_000), params.MinBond)
}

func TestParamsValidate(t *testing.T) {
	params := types.NewParams(testTokenContract, math.NewInt(1_000), math.NewInt(1_000))
	require.NoError(t, params.Validate())

	invalid := params
	invalid.TokenContract = "not-an-address"
	require.Error(t, invalid.Validate())

	invalid = params
	invalid.TokensPerPower = math.ZeroInt()
	require.Error(t, invalid.Validate())

	invalid = params
	invalid.MinBond = math.ZeroInt()
	require.Error(t, invalid.Validate())
}

func TestParamsPower(t *testing.T) {
	params := types.NewParams(testTokenContract, math.NewInt(1_000), math.NewInt(1_000))

	// Below MinBond the record carries no power at all.
	require.True(t, params.Power(math.NewInt(999), math.LegacyOneDec()).IsZero())
	require.Equal(t, math.OneInt(), params.Power(math.NewInt(1_000), math.LegacyOneDec()))

	// The multiplied stake truncates before dividing by TokensPerPower.
	require.Equal(t, math.NewInt(7), params.Power(math.NewInt(5_000), math.LegacyNewDecWithPrec(15, 1)))
	require.Equal(t, math.NewInt(1), params.Power(math.NewInt(1_999), math.LegacyOneDec()))

	// Large stakes stay exact.
	require.Equal(t, math.NewInt(1_000_000), params.Power(math.NewInt(1_000_000_000), math.LegacyOneDec()))
}

func TestBucketValidate(t *testing.T) {
	bucket := types.NewBucket(math.LegacyOneDec(), math.LegacyNewDecWithPrec(5, 1))
	require.NoError(t, bucket.Validate())

	bucket.VotingMultiplier = math.LegacyNewDec(-1)
	require.Error(t, bucket.Validate())

	bucket = types.NewBucket(math.LegacyOneDec(), math.LegacyNewDec(-1))
	require.Error(t, bucket.Validate())
}

func TestDistributionWithdrawableRewards(t *testing.T) {
	distribution := types.NewDistribution()
	adjustment := types.NewWithdrawAdjustment(sdk.AccAddress("owner_______________"))

	amount, err := distribution.WithdrawableRewards(math.NewInt(10), adjustment)
	require.NoError(t, err)
	require.True(t, amount.IsZero())

	// One distributed token per point of power.
	distribution.SharesPerPoint = types.SharesScale()
	amount, err = distribution.WithdrawableRewards(math.NewInt(10), adjustment)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10), amount)

	adjustment.WithdrawnRewards = math.NewInt(4)
	amount, err = distribution.WithdrawableRewards(math.NewInt(10), adjustment)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(6), amount)

	// A correction that drives the share balance negative is an invariant
	// violation, not something to clamp.
	adjustment.SharesCorrection = types.SharesScale().Mul(math.NewInt(-11))
	_, err = distribution.WithdrawableRewards(math.NewInt(10), adjustment)
	require.ErrorIs(t, err, types.ErrInvalidRewards)
}

func TestValidateGenesis(t *testing.T) {
	genState := types.NewGenesisState(
		types.NewParams(testTokenContract, math.NewInt(1_000), math.NewInt(1_000)),
		[]types.BucketConfig{
			{UnbondingPeriod: 100, VotingMultiplier: math.LegacyOneDec(), RewardMultiplier: math.LegacyOneDec()},
			{UnbondingPeriod: 200, VotingMultiplier: math.LegacyOneDec(), RewardMultiplier: math.LegacyOneDec()},
		},
		"",
		nil,
	)
	require.NoError(t, types.ValidateGenesis(genState))

	dup := *genState
	dup.Buckets = append(dup.Buckets, types.BucketConfig{
		UnbondingPeriod: 100, VotingMultiplier: math.LegacyOneDec(), RewardMultiplier: math.LegacyOneDec(),
	})
	require.Error(t, types.ValidateGenesis(&dup))

	empty := *genState
	empty.Buckets = nil
	require.Error(t, types.ValidateGenesis(&empty))

	badAdmin := *genState
	badAdmin.Admin = "nope"
	require.Error(t, types.ValidateGenesis(&badAdmin))

	observer := sdk.AccAddress("observer____________").String()
	dupObserver := *genState
	dupObserver.Observers = []string{observer, observer}
	require.Error(t, types.ValidateGenesis(&dupObserver))
}
