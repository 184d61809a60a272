package types

import (
	"context"

	"cosmossdk.io/math"
)

// TokenKeeper is the read surface of the external fungible-token ledger that
// custodies staked balances. Transfers and undelegations never go through it
// directly; they are emitted as outbox instructions instead.
type TokenKeeper interface {
	// Balance returns the token balance held by addr.
	Balance(ctx context.Context, addr string) (math.Int, error)
}
