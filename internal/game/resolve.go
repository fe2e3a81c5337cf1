package game

// HoleOutcome records the resolution of a single hole. BankBefore is the
// carry-over from earlier pushed holes only; the current hole's own stake
// is added after it is captured. Winners is empty when the hole pushed.
type HoleOutcome struct {
	HoleNumber int
	BankBefore int
	Scores     map[string]int
	Winners    []string
}

// Resolve plays the round hole by hole, threading the bank accumulator
// between holes, and returns the aggregated result. Resolution over a
// validated Round is total: it cannot fail.
func Resolve(r *Round) *RoundResult {
	bank := 0
	holes := make([]HoleOutcome, 0, r.HolesCount)
	skins := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		skins[p.ID] = 0
	}

	for n := 1; n <= r.HolesCount; n++ {
		bankBefore := bank
		bank += r.Stake

		scores := make(map[string]int, len(r.Players))
		var low []string
		minScore := 0
		for i, p := range r.Players {
			s := p.Scores[n-1]
			scores[p.ID] = s
			switch {
			case i == 0 || s < minScore:
				minScore = s
				low = append(low[:0], p.ID)
			case s == minScore:
				low = append(low, p.ID)
			}
		}

		winners := make([]string, 0, len(low))
		if len(low) == 1 {
			// Unique low score claims the whole bank.
			skins[low[0]] += bank
			winners = append(winners, low[0])
			bank = 0
		} else if r.TiePolicy == SplitSkin {
			// Even split among the tied players; the integer remainder
			// goes to the tied player earliest in play order so the bank
			// always drains to zero on a claimed hole.
			share := bank / len(low)
			remainder := bank % len(low)
			for _, id := range low {
				skins[id] += share
			}
			skins[low[0]] += remainder
			winners = append(winners, low...)
			bank = 0
		}
		// PushCarryOver with a tied hole: winners stays empty and the
		// bank carries into the next hole unchanged.

		holes = append(holes, HoleOutcome{
			HoleNumber: n,
			BankBefore: bankBefore,
			Scores:     scores,
			Winners:    winners,
		})
	}

	return aggregate(r, skins, holes, bank)
}
