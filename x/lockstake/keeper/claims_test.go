package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/initia-labs/lockstake/x/lockstake/types"
)

func TestClaimNothingMatured(t *testing.T) {
	in := createTestInput(t, defaultGenesis())

	_, err := in.keeper.Claim(in.ctx, addr1)
	require.ErrorIs(t, err, types.ErrNothingToClaim)

	// A pending but unmatured claim does not help.
	in.bond(t, addr1, 7_000, weekSeconds)
	_, err = in.keeper.Unbond(in.ctx, addr1, math.NewInt(2_000), weekSeconds)
	require.NoError(t, err)

	_, err = in.keeper.Claim(in.ctx, addr1)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
}

func TestClaimReleasesMatured(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 7_000, weekSeconds)

	_, err := in.keeper.Unbond(in.ctx, addr1, math.NewInt(2_000), weekSeconds)
	require.NoError(t, err)
	in.applyOutbox()

	in.advance(10, time.Duration(weekSeconds)*time.Second)

	released, err := in.keeper.Claim(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000), released)

	// The undelegate instruction moves the tokens back to the staker.
	in.applyOutbox()
	balance, err := in.tk.Balance(in.ctx, addr1.String())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000), balance)

	tokenInfo, err := in.keeper.GetTokenInfo(in.ctx)
	require.NoError(t, err)
	require.True(t, tokenInfo.Unbonding.IsZero())

	claims, err := in.keeper.GetClaims(in.ctx, addr1)
	require.NoError(t, err)
	require.Empty(t, claims)

	_, err = in.keeper.Claim(in.ctx, addr1)
	require.ErrorIs(t, err, types.ErrNothingToClaim)
}

func TestClaimPartialMaturity(t *testing.T) {
	in := createTestInput(t, defaultGenesis())
	in.bond(t, addr1, 10_000, weekSeconds)

	_, err := in.keeper.Unbond(in.ctx, addr1, math.NewInt(1_000), weekSeconds)
	require.NoError(t, err)

	in.advance(1, time.Hour)
	_, err = in.keeper.Unbond(in.ctx, addr1, math.NewInt(2_000), weekSeconds)
	require.NoError(t, err)

	// Only the first unbond has matured.
	in.advance(10, time.Duration(weekSeconds)*time.Second-30*time.Minute)

	released, err := in.keeper.Claim(in.ctx, addr1)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000), released)

	claims, err := in.keeper.GetClaims(in.ctx, addr1)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	require.Equal(t, math.NewInt(2_000), claims[0].Amount)

	tokenInfo, err := in.keeper.GetTokenInfo(in.ctx)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000), tokenInfo.Unbonding)
}
