package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/initia-labs/lockstake/x/lockstake/keeper"
	"github.com/initia-labs/lockstake/x/lockstake/types"
)

func TestMsgServerUnbondCompletionTime(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)

	res, err := in.ms.Unbond(in.ctx, types.NewMsgUnbond(addr1.String(), math.NewInt(2_000), weekSeconds))
	require.NoError(t, err)

	want := in.ctx.BlockTime().Add(time.Duration(weekSeconds) * time.Second).UTC().Format(time.RFC3339)
	require.Equal(t, want, res.CompletionTime)
}

func TestMsgServerValidatesBeforeStateAccess(t *testing.T) {
	in := createTestInput(t, defaultGenesis())

	_, err := in.ms.Unbond(in.ctx, types.NewMsgUnbond("bad-address", math.NewInt(1), weekSeconds))
	require.Error(t, err)

	_, err = in.ms.Rebond(in.ctx, types.NewMsgRebond(addr1.String(), math.NewInt(1), weekSeconds, weekSeconds))
	require.ErrorIs(t, err, types.ErrSameUnbondingRebond)

	_, err = in.ms.ReceiveDelegation(in.ctx, types.NewMsgReceiveDelegation(
		tokenAddr.String(), addr1.String(), math.ZeroInt(), weekSeconds))
	require.Error(t, err)
}

func TestMsgServerWithdrawDefaults(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)

	in.fundRewards(700)
	_, err := in.ms.DistributeRewards(in.ctx, types.NewMsgDistributeRewards(addr1.String(), ""))
	require.NoError(t, err)

	// Owner and receiver both default to the sender.
	res, err := in.ms.WithdrawRewards(in.ctx, types.NewMsgWithdrawRewards(addr1.String(), "", ""))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700), res.Reward)

	in.applyOutbox()
	balance, err := in.tk.Balance(in.ctx, addr1.String())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(700), balance)
}

func TestDispatchRoutesMessages(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.tk.mint(ledgerAddr.String(), math.NewInt(7_000))

	res, err := keeper.Dispatch(in.ctx, in.ms, types.NewMsgReceiveDelegation(
		tokenAddr.String(), addr1.String(), math.NewInt(7_000), weekSeconds))
	require.NoError(t, err)
	require.IsType(t, &types.MsgReceiveDelegationResponse{}, res)

	res, err = keeper.Dispatch(in.ctx, in.ms, types.NewMsgClaim(addr1.String()))
	require.ErrorIs(t, err, types.ErrNothingToClaim)
	require.Nil(t, res)

	_, err = keeper.Dispatch(in.ctx, in.ms, nil)
	require.Error(t, err)
}
