package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

func TestDistributeRewardsNoMembers(t *testing.T) {
	in := createTestInput(t, defaultGenesis())

	in.fundRewards(400)
	_, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.ErrorIs(t, err, types.ErrNoMembers)
}

func TestDistributeRewardsZeroIsNoop(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)

	amount, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)
	require.True(t, amount.IsZero())

	distribution, err := in.keeper.GetDistribution(in.ctx)
	require.NoError(t, err)
	require.True(t, distribution.SharesPerPoint.IsZero())
}

// Three stakers with reward powers 7, 11 and 13 receive 100 and then 3000
// tokens. 3100 splits exactly in the 7:11:13 ratio, so after both
// distributions everyone can withdraw their exact share and nothing sticks in
// the leftover.
func TestDistributeRewardsExactSplit(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)
	in.bond(t, addr2, 11_000, weekSeconds)
	in.bond(t, addr3, 13_000, weekSeconds)

	in.fundRewards(100)
	amount, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), amount)

	in.fundRewards(3_000)
	amount, err = in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3_000), amount)

	distribution, err := in.keeper.GetDistribution(in.ctx)
	require.NoError(t, err)
	require.True(t, distribution.SharesLeftover.IsZero())
	require.Equal(t, math.NewInt(3_100), distribution.DistributedTotal)
	require.Equal(t, math.NewInt(3_100), distribution.WithdrawableTotal)

	expected := map[string]int64{
		addr1.String(): 700,
		addr2.String(): 1_100,
		addr3.String(): 1_300,
	}

	withdrawable, err := in.keeper.WithdrawableRewards(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700), withdrawable)

	withdrawable, err = in.keeper.WithdrawableRewards(in.ctx, addr2)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_100), withdrawable)

	withdrawable, err = in.keeper.WithdrawableRewards(in.ctx, addr3)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_300), withdrawable)

	reward, err := in.keeper.WithdrawRewards(in.ctx, addr1, addr1, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700), reward)

	reward, err = in.keeper.WithdrawRewards(in.ctx, addr2, addr2, addr2)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_100), reward)

	reward, err = in.keeper.WithdrawRewards(in.ctx, addr3, addr3, addr3)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_300), reward)

	in.applyOutbox()
	for addr, want := range expected {
		balance, err := in.tk.Balance(in.ctx, addr)
		require.NoError(t, err)
		require.Equal(t, math.NewInt(want), balance)
	}

	// Everything was paid out; only the staked custody remains.
	distribution, err = in.keeper.GetDistribution(in.ctx)
	require.NoError(t, err)
	require.True(t, distribution.WithdrawableTotal.IsZero())

	balance, err := in.tk.Balance(in.ctx, ledgerAddr.String())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(31_000), balance)
}

func TestDistributeRewardsLeftoverCarry(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)
	in.bond(t, addr2, 11_000, weekSeconds)
	in.bond(t, addr3, 13_000, weekSeconds)

	// 100 does not divide by 31; each share truncates down and the remainder
	// stays withdrawable for later.
	in.fundRewards(100)
	_, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)

	distribution, err := in.keeper.GetDistribution(in.ctx)
	require.NoError(t, err)
	require.False(t, distribution.SharesLeftover.IsZero())

	sum := math.ZeroInt()
	for _, owner := range []struct {
		addr sdk.AccAddress
		want int64
	}{
		{addr1, 22},
		{addr2, 35},
		{addr3, 41},
	} {
		withdrawable, err := in.keeper.WithdrawableRewards(in.ctx, owner.addr)
		require.NoError(t, err)
		require.Equal(t, math.NewInt(owner.want), withdrawable)
		sum = sum.Add(withdrawable)
	}

	require.True(t, sum.LTE(distribution.WithdrawableTotal))
}

// Reward-power changes must not retroactively change already-distributed
// rewards: the correction term freezes each account's entitlement at the
// rate in force when its power changed.
func TestRewardCorrectionAcrossPowerChanges(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)
	in.bond(t, addr2, 13_000, weekSeconds)

	in.fundRewards(2_000)
	_, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)

	before1, err := in.keeper.WithdrawableRewards(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700), before1)

	// addr1 triples its stake after the distribution.
	in.bond(t, addr1, 14_000, weekSeconds)

	after1, err := in.keeper.WithdrawableRewards(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, before1, after1)

	// The next distribution splits by the new powers: 21 vs 13.
	in.fundRewards(3_400)
	_, err = in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)

	withdrawable, err := in.keeper.WithdrawableRewards(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700+2_100), withdrawable)

	withdrawable, err = in.keeper.WithdrawableRewards(in.ctx, addr2)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_300+1_300), withdrawable)
}

func TestWithdrawRewardsDelegate(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)

	in.fundRewards(770)
	_, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)

	// A third party may not withdraw on the owner's behalf.
	_, err = in.keeper.WithdrawRewards(in.ctx, addr2, addr1, addr2)
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	require.NoError(t, in.keeper.DelegateWithdrawal(in.ctx, addr1, addr2))

	delegated, err := in.keeper.GetWithdrawAdjustment(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, addr2, delegated.Delegate)

	reward, err := in.keeper.WithdrawRewards(in.ctx, addr2, addr1, addr3)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(770), reward)

	in.applyOutbox()
	balance, err := in.tk.Balance(in.ctx, addr3.String())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(770), balance)

	// Nothing left to withdraw; a repeat is a silent no-op.
	reward, err = in.keeper.WithdrawRewards(in.ctx, addr1, addr1, addr1)
	require.NoError(t, err)
	require.True(t, reward.IsZero())
}

// Tokens sitting in the unbonding queue stay out of the reward base: the
// distribution amount is the ledger balance minus all custodied tokens,
// unbonding included.
func TestDistributeRewardsExcludesUnbondingTokens(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)
	in.bond(t, addr2, 7_000, weekSeconds)

	_, err := in.keeper.Unbond(in.ctx, addr1, math.NewInt(2_000), weekSeconds)
	require.NoError(t, err)
	in.applyOutbox()

	// The 2000 unbonding tokens are still on the ledger's balance but must
	// not be distributed as rewards.
	in.fundRewards(500)
	amount, err := in.keeper.DistributeRewards(in.ctx, addr1.String(), "")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), amount)

	// After the claim pays out, the reward math is unchanged.
	in.advance(1, time.Duration(weekSeconds)*time.Second)
	_, err = in.keeper.Claim(in.ctx, addr1)
	require.NoError(t, err)
	in.applyOutbox()

	undistributed, err := in.keeper.UndistributedRewards(in.ctx)
	require.NoError(t, err)
	require.True(t, undistributed.IsZero())

	distribution, err := in.keeper.GetDistribution(in.ctx)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), distribution.WithdrawableTotal)
}
