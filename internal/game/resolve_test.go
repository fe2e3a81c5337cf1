package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRound(t *testing.T, holes int, entries []PlayerEntry, opts ...RoundOption) *Round {
	t.Helper()
	r, err := NewRound(holes, entries, opts...)
	require.NoError(t, err)
	return r
}

// Three holes: a win, then two pushes that leave the bank unclaimed.
func TestResolveWinThenPushes(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 3, []PlayerEntry{
		{ID: "A", Scores: []int{4, 5, 3}},
		{ID: "B", Scores: []int{5, 5, 3}},
	})
	res := Resolve(r)

	assert.Equal(t, map[string]int{"A": 1, "B": 0}, res.PlayerSkins)
	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, 2, res.UnclaimedBank)

	require.Len(t, res.Holes, 3)
	assert.Equal(t, []string{"A"}, res.Holes[0].Winners)
	assert.Empty(t, res.Holes[1].Winners)
	assert.Empty(t, res.Holes[2].Winners)

	// BankBefore reflects carry-over only, never the hole's own stake.
	assert.Equal(t, 0, res.Holes[0].BankBefore)
	assert.Equal(t, 0, res.Holes[1].BankBefore)
	assert.Equal(t, 1, res.Holes[2].BankBefore)
}

// A single all-tied hole pushes and the round ends with the stake unclaimed.
func TestResolveSingleHoleTie(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 1, []PlayerEntry{
		{ID: "A", Scores: []int{4}},
		{ID: "B", Scores: []int{4}},
	})
	res := Resolve(r)

	assert.Equal(t, map[string]int{"A": 0, "B": 0}, res.PlayerSkins)
	assert.Equal(t, WinnerTie, res.Winner)
	assert.Equal(t, 1, res.UnclaimedBank)
	require.Len(t, res.Holes, 1)
	assert.Empty(t, res.Holes[0].Winners)
}

func TestResolveCarryOverClaimedLater(t *testing.T) {
	t.Parallel()

	// Holes 1 and 2 push, hole 3 claims the full bank of 3.
	r := mustRound(t, 3, []PlayerEntry{
		{ID: "A", Scores: []int{4, 5, 3}},
		{ID: "B", Scores: []int{4, 5, 4}},
	})
	res := Resolve(r)

	assert.Equal(t, map[string]int{"A": 3, "B": 0}, res.PlayerSkins)
	assert.Equal(t, "A", res.Winner)
	assert.Equal(t, 0, res.UnclaimedBank)
	assert.Equal(t, 2, res.Holes[2].BankBefore)
	assert.Equal(t, []string{"A"}, res.Holes[2].Winners)
}

// All players tied on a hole is a push regardless of player count.
func TestResolveAllTiedIsPush(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 1, []PlayerEntry{
		{ID: "a", Scores: []int{3}},
		{ID: "b", Scores: []int{3}},
		{ID: "c", Scores: []int{3}},
		{ID: "d", Scores: []int{3}},
		{ID: "e", Scores: []int{3}},
		{ID: "f", Scores: []int{3}},
	})
	res := Resolve(r)

	assert.Empty(t, res.Holes[0].Winners)
	assert.Equal(t, 1, res.UnclaimedBank)
	assert.Equal(t, WinnerTie, res.Winner)
}

// A partial tie (two of three players share the low) still pushes.
func TestResolvePartialTiePushes(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 1, []PlayerEntry{
		{ID: "a", Scores: []int{3}},
		{ID: "b", Scores: []int{3}},
		{ID: "c", Scores: []int{5}},
	})
	res := Resolve(r)

	assert.Empty(t, res.Holes[0].Winners)
	assert.Equal(t, 1, res.UnclaimedBank)
}

func TestResolveStake(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 2, []PlayerEntry{
		{ID: "A", Scores: []int{4, 4}},
		{ID: "B", Scores: []int{5, 5}},
	}, WithStake(5))
	res := Resolve(r)

	assert.Equal(t, map[string]int{"A": 10, "B": 0}, res.PlayerSkins)
	assert.Equal(t, 0, res.UnclaimedBank)
}

func TestResolveSplitSkin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		holes         int
		stake         int
		entries       []PlayerEntry
		wantSkins     map[string]int
		wantUnclaimed int
		wantWinners   [][]string
	}{
		{
			name:  "even split of carried bank",
			holes: 2,
			stake: 1,
			entries: []PlayerEntry{
				{ID: "a", Scores: []int{9, 3}},
				{ID: "b", Scores: []int{3, 3}},
				{ID: "c", Scores: []int{3, 9}},
			},
			// Hole 1: b and c split 1; remainder 1 to b (earlier in play
			// order). Hole 2: a and b split 1; remainder to a.
			wantSkins:     map[string]int{"a": 1, "b": 1, "c": 0},
			wantUnclaimed: 0,
			wantWinners:   [][]string{{"b", "c"}, {"a", "b"}},
		},
		{
			name:  "split drains the bank exactly",
			holes: 1,
			stake: 6,
			entries: []PlayerEntry{
				{ID: "a", Scores: []int{4}},
				{ID: "b", Scores: []int{4}},
				{ID: "c", Scores: []int{4}},
			},
			wantSkins:     map[string]int{"a": 2, "b": 2, "c": 2},
			wantUnclaimed: 0,
			wantWinners:   [][]string{{"a", "b", "c"}},
		},
		{
			name:  "remainder goes to earliest tied player",
			holes: 1,
			stake: 7,
			entries: []PlayerEntry{
				{ID: "a", Scores: []int{4}},
				{ID: "b", Scores: []int{4}},
				{ID: "c", Scores: []int{4}},
			},
			wantSkins:     map[string]int{"a": 3, "b": 2, "c": 2},
			wantUnclaimed: 0,
			wantWinners:   [][]string{{"a", "b", "c"}},
		},
		{
			name:  "unique low still claims everything",
			holes: 1,
			stake: 3,
			entries: []PlayerEntry{
				{ID: "a", Scores: []int{3}},
				{ID: "b", Scores: []int{4}},
			},
			wantSkins:     map[string]int{"a": 3, "b": 0},
			wantUnclaimed: 0,
			wantWinners:   [][]string{{"a"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := mustRound(t, tt.holes, tt.entries,
				WithStake(tt.stake), WithTiePolicy(SplitSkin))
			res := Resolve(r)

			assert.Equal(t, tt.wantSkins, res.PlayerSkins)
			assert.Equal(t, tt.wantUnclaimed, res.UnclaimedBank)
			require.Len(t, res.Holes, tt.holes)
			for i, want := range tt.wantWinners {
				assert.Equal(t, want, res.Holes[i].Winners, "hole %d winners", i+1)
			}
		})
	}
}

// Under both policies the bank resets after any claimed hole and is
// non-decreasing across consecutive pushes.
func TestResolveBankThreading(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 5, []PlayerEntry{
		{ID: "A", Scores: []int{4, 4, 3, 4, 4}},
		{ID: "B", Scores: []int{4, 4, 5, 4, 4}},
	})
	res := Resolve(r)

	// Pushes on holes 1-2 accumulate, hole 3 claims, holes 4-5 push again.
	wantBankBefore := []int{0, 1, 2, 0, 1}
	for i, h := range res.Holes {
		assert.Equal(t, wantBankBefore[i], h.BankBefore, "hole %d", i+1)
		assert.GreaterOrEqual(t, h.BankBefore, 0)
	}
	assert.Equal(t, map[string]int{"A": 3, "B": 0}, res.PlayerSkins)
	assert.Equal(t, 2, res.UnclaimedBank)
}

func TestResolveRecordsPerHoleScores(t *testing.T) {
	t.Parallel()

	r := mustRound(t, 2, []PlayerEntry{
		{ID: "A", Scores: []int{4, 6}},
		{ID: "B", Scores: []int{5, 2}},
	})
	res := Resolve(r)

	assert.Equal(t, map[string]int{"A": 4, "B": 5}, res.Holes[0].Scores)
	assert.Equal(t, map[string]int{"A": 6, "B": 2}, res.Holes[1].Scores)
}
