package types

import (
	"sort"
	"time"

	"cosmossdk.io/math"
)

// LockedTokens is a slice of stake temporarily ineligible for unbonding
// because of a cross-bucket rebond, until its own unlock time passes.
type LockedTokens struct {
	UnlockTime time.Time `json:"unlock_time"`
	Amount     math.Int  `json:"amount"`
}

// BondingInfo is the per-(account, unbonding period) stake record. Votes and
// Rewards are kept in sync with the total stake on every mutation.
type BondingInfo struct {
	// Stake is the amount of staked tokens which are not locked.
	Stake   math.Int `json:"stake"`
	Votes   math.Int `json:"votes"`
	Rewards math.Int `json:"rewards"`
	// LockedTokens entries are kept sorted by unlock time.
	LockedTokens []LockedTokens `json:"locked_tokens,omitempty"`
}

// NewBondingInfo creates an empty bonding record.
func NewBondingInfo() BondingInfo {
	return BondingInfo{
		Stake:   math.ZeroInt(),
		Votes:   math.ZeroInt(),
		Rewards: math.ZeroInt(),
	}
}

// AddUnlockedTokens adds an amount of tokens to the free stake and returns
// the new free stake.
func (b *BondingInfo) AddUnlockedTokens(amount math.Int) math.Int {
	b.Stake = b.Stake.Add(amount)
	return b.Stake
}

// AddLockedTokens inserts a new locked entry in its correct place. Entries
// sharing the same unlock time are merged.
func (b *BondingInfo) AddLockedTokens(unlockTime time.Time, amount math.Int) {
	pos := sort.Search(len(b.LockedTokens), func(i int) bool {
		return !b.LockedTokens[i].UnlockTime.Before(unlockTime)
	})

	if pos < len(b.LockedTokens) && b.LockedTokens[pos].UnlockTime.Equal(unlockTime) {
		b.LockedTokens[pos].Amount = b.LockedTokens[pos].Amount.Add(amount)
		return
	}

	b.LockedTokens = append(b.LockedTokens, LockedTokens{})
	copy(b.LockedTokens[pos+1:], b.LockedTokens[pos:])
	b.LockedTokens[pos] = LockedTokens{UnlockTime: unlockTime, Amount: amount}
}

// FreeUnlockedTokens folds every locked entry whose unlock time has passed
// into the free stake.
func (b *BondingInfo) FreeUnlockedTokens(now time.Time) {
	if len(b.LockedTokens) == 0 {
		return
	}

	remaining := b.LockedTokens[:0]
	for _, locked := range b.LockedTokens {
		if locked.UnlockTime.After(now) {
			remaining = append(remaining, locked)
		} else {
			b.Stake = b.Stake.Add(locked.Amount)
		}
	}

	if len(remaining) == 0 {
		remaining = nil
	}
	b.LockedTokens = remaining
}

// ReleaseStake attempts to release an amount of stake, first folding any
// matured locked entries into the free stake. The subtraction is the only
// capacity check; trying to release more than the unlocked stake fails.
func (b *BondingInfo) ReleaseStake(now time.Time, amount math.Int) error {
	b.FreeUnlockedTokens(now)

	newStake := b.Stake.Sub(amount)
	if newStake.IsNegative() {
		return ErrInsufficientStake
	}

	b.Stake = newStake
	return nil
}

// TotalLocked returns the sum of locked entries with an unlock time after now.
func (b BondingInfo) TotalLocked(now time.Time) math.Int {
	locked := math.ZeroInt()
	for _, entry := range b.LockedTokens {
		if entry.UnlockTime.After(now) {
			locked = locked.Add(entry.Amount)
		}
	}

	return locked
}

// TotalUnlocked returns the free stake plus locked entries already matured
// at now.
func (b BondingInfo) TotalUnlocked(now time.Time) math.Int {
	unlocked := b.Stake
	for _, entry := range b.LockedTokens {
		if !entry.UnlockTime.After(now) {
			unlocked = unlocked.Add(entry.Amount)
		}
	}

	return unlocked
}

// TotalStake returns all stake for this record, including locked entries.
func (b BondingInfo) TotalStake() math.Int {
	total := b.Stake
	for _, entry := range b.LockedTokens {
		total = total.Add(entry.Amount)
	}

	return total
}

// TokenInfo tracks the ledger-wide custody split between fully bonded tokens
// and tokens awaiting claim.
type TokenInfo struct {
	Staked    math.Int `json:"staked"`
	Unbonding math.Int `json:"unbonding"`
}

// NewTokenInfo creates a zeroed TokenInfo.
func NewTokenInfo() TokenInfo {
	return TokenInfo{
		Staked:    math.ZeroInt(),
		Unbonding: math.ZeroInt(),
	}
}

// Total returns staked plus unbonding tokens.
func (t TokenInfo) Total() math.Int {
	return t.Staked.Add(t.Unbonding)
}
