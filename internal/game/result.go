package game

import "fmt"

// WinnerTie is the sentinel Winner value when two or more players share
// the highest skins total. Ties are never broken silently.
const WinnerTie = "TIE"

// RoundResult is the final tally for one round.
type RoundResult struct {
	// PlayerSkins maps every player id to the cumulative value claimed.
	PlayerSkins map[string]int
	// Winner is the id of the player with the strictly largest total, or
	// WinnerTie when the maximum is shared.
	Winner string
	// Holes holds one outcome per hole, in play order.
	Holes []HoleOutcome
	// UnclaimedBank is the bank left outstanding after the final hole.
	UnclaimedBank int
}

// aggregate folds per-hole outcomes into the final result. Iteration is
// over r.Players rather than the skins map so winner determination is
// deterministic.
func aggregate(r *Round, skins map[string]int, holes []HoleOutcome, bank int) *RoundResult {
	winner := ""
	best := -1
	shared := 0
	for _, p := range r.Players {
		v := skins[p.ID]
		if v > best {
			best = v
			winner = p.ID
			shared = 1
		} else if v == best {
			shared++
		}
	}
	if shared > 1 {
		winner = WinnerTie
	}

	return &RoundResult{
		PlayerSkins:   skins,
		Winner:        winner,
		Holes:         holes,
		UnclaimedBank: bank,
	}
}

// ValidateStakeConservation checks the engine's own invariants after a
// resolution: every unit staked is either claimed by a player or left in
// the unclaimed bank, no total is negative, and exactly one outcome was
// produced per hole. A non-nil error is a defect in the engine, never a
// problem with the caller's input.
func ValidateStakeConservation(r *Round, res *RoundResult) error {
	if res.UnclaimedBank < 0 {
		return fmt.Errorf("unclaimed bank is negative: %d", res.UnclaimedBank)
	}

	total := res.UnclaimedBank
	for id, v := range res.PlayerSkins {
		if v < 0 {
			return fmt.Errorf("player %q has negative skins total %d", id, v)
		}
		total += v
	}

	staked := r.HolesCount * r.Stake
	if total != staked {
		return fmt.Errorf("stake conservation violated: claimed+unclaimed is %d, staked %d", total, staked)
	}

	if len(res.Holes) != r.HolesCount {
		return fmt.Errorf("resolver produced %d hole outcomes, expected %d", len(res.Holes), r.HolesCount)
	}

	return nil
}
