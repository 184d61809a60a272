package keeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/lockstake/x/lockstake/keeper"
	"github.com/initia-labs/lockstake/x/lockstake/types"
)

const (
	daySeconds   = uint64(24 * 60 * 60)
	weekSeconds  = 7 * daySeconds
	monthSeconds = 30 * daySeconds
)

var (
	ledgerAddr = sdk.AccAddress("lockstake_ledger____")
	tokenAddr  = sdk.AccAddress("token_contract______")
	adminAddr  = sdk.AccAddress("admin_______________")

	addr1 = sdk.AccAddress("delegator1__________")
	addr2 = sdk.AccAddress("delegator2__________")
	addr3 = sdk.AccAddress("delegator3__________")
)

// fakeTokenKeeper simulates the external fungible-token ledger. Balances move
// when the test applies the outbox, mirroring how the host dispatches the
// queued instructions after a successful command.
type fakeTokenKeeper struct {
	balances map[string]math.Int
}

func newFakeTokenKeeper() *fakeTokenKeeper {
	return &fakeTokenKeeper{balances: make(map[string]math.Int)}
}

func (tk *fakeTokenKeeper) Balance(_ context.Context, addr string) (math.Int, error) {
	balance, ok := tk.balances[addr]
	if !ok {
		return math.ZeroInt(), nil
	}

	return balance, nil
}

func (tk *fakeTokenKeeper) mint(addr string, amount math.Int) {
	balance, ok := tk.balances[addr]
	if !ok {
		balance = math.ZeroInt()
	}
	tk.balances[addr] = balance.Add(amount)
}

func (tk *fakeTokenKeeper) transfer(from, to string, amount math.Int) {
	tk.balances[from] = tk.balances[from].Sub(amount)
	tk.mint(to, amount)
}

type testInput struct {
	ctx    sdk.Context
	keeper *keeper.Keeper
	ms     types.MsgServer
	tk     *fakeTokenKeeper
	outbox *types.Outbox
}

func defaultGenesis() *types.GenesisState {
	return types.NewGenesisState(
		types.NewParams(tokenAddr.String(), math.NewInt(1_000), math.NewInt(5_000)),
		[]types.BucketConfig{
			{
				UnbondingPeriod:  weekSeconds,
				VotingMultiplier: math.LegacyOneDec(),
				RewardMultiplier: math.LegacyOneDec(),
			},
			{
				UnbondingPeriod:  monthSeconds,
				VotingMultiplier: math.LegacyNewDecWithPrec(15, 1),
				RewardMultiplier: math.LegacyNewDecWithPrec(12, 1),
			},
		},
		adminAddr.String(),
		nil,
	)
}

func createTestInput(t *testing.T, genState *types.GenesisState) testInput {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.ModuleName)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, cms.LoadLatestVersion())

	ctx := sdk.NewContext(cms, cmtproto.Header{
		Height: 1,
		Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, false, log.NewNopLogger())

	tk := newFakeTokenKeeper()
	outbox := types.NewOutbox()
	k := keeper.NewKeeper(runtime.NewKVStoreService(storeKey), tk, outbox, ledgerAddr.String())

	require.NoError(t, k.InitGenesis(ctx, genState))

	return testInput{
		ctx:    ctx,
		keeper: k,
		ms:     keeper.NewMsgServerImpl(k),
		tk:     tk,
		outbox: outbox,
	}
}

// bond simulates the token ledger custodying amount and relaying the
// delegation notification.
func (in *testInput) bond(t *testing.T, delegator sdk.AccAddress, amount int64, unbondingPeriod uint64) {
	t.Helper()

	in.tk.mint(ledgerAddr.String(), math.NewInt(amount))
	_, err := in.ms.ReceiveDelegation(in.ctx, types.NewMsgReceiveDelegation(
		tokenAddr.String(), delegator.String(), math.NewInt(amount), unbondingPeriod))
	require.NoError(t, err)
}

// fundRewards simulates reward tokens arriving at the ledger's account.
func (in *testInput) fundRewards(amount int64) {
	in.tk.mint(ledgerAddr.String(), math.NewInt(amount))
}

// applyOutbox dispatches queued instructions against the fake token ledger
// and returns the hook notifications for inspection.
func (in *testInput) applyOutbox() []types.MsgMemberChanged {
	var hooks []types.MsgMemberChanged
	for _, msg := range in.outbox.Drain() {
		switch msg := msg.(type) {
		case types.MsgUndelegate:
			in.tk.transfer(ledgerAddr.String(), msg.Recipient, msg.Amount)
		case types.MsgTransfer:
			in.tk.transfer(ledgerAddr.String(), msg.Recipient, msg.Amount)
		case types.MsgMemberChanged:
			hooks = append(hooks, msg)
		}
	}

	return hooks
}

// advance moves the chain forward by blocks and duration.
func (in *testInput) advance(blocks int64, d time.Duration) {
	in.ctx = in.ctx.
		WithBlockHeight(in.ctx.BlockHeight() + blocks).
		WithBlockTime(in.ctx.BlockTime().Add(d))
}
