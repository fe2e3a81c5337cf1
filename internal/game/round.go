package game

import "fmt"

// Round size limits. A standard course caps at 18 holes; skins stays
// interesting with small groups, so player count is capped at 6.
const (
	MinHoles   = 1
	MaxHoles   = 18
	MinPlayers = 2
	MaxPlayers = 6

	// DefaultStake is the value added to the bank for each hole played.
	DefaultStake = 1
)

// TiePolicy controls what happens to the bank when two or more players
// share the low score on a hole.
type TiePolicy int

const (
	// PushCarryOver leaves the bank unclaimed on a tied hole; the full
	// amount carries into the next hole. Traditional skins rules.
	PushCarryOver TiePolicy = iota

	// SplitSkin divides the bank evenly among the tied players. The
	// integer remainder goes to the tied player earliest in play order.
	SplitSkin
)

// String returns the config-file name of the policy.
func (p TiePolicy) String() string {
	switch p {
	case PushCarryOver:
		return "push"
	case SplitSkin:
		return "split"
	default:
		return fmt.Sprintf("TiePolicy(%d)", int(p))
	}
}

// ParseTiePolicy parses a policy name as used in config files and flags.
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "push":
		return PushCarryOver, nil
	case "split":
		return SplitSkin, nil
	default:
		return PushCarryOver, fmt.Errorf("invalid tie policy %q: must be push or split", s)
	}
}

// Player is one competitor in a round. Scores holds one stroke count per
// hole, in play order. Players are immutable once the round is built.
type Player struct {
	ID     string
	Scores []int
}

// Round is a validated description of one skins round. Construct it via
// NewRound; every player's score list is guaranteed to have exactly
// HolesCount entries.
type Round struct {
	HolesCount int
	Players    []*Player
	Stake      int
	TiePolicy  TiePolicy
}

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

// roundConfig holds the optional per-round settings.
type roundConfig struct {
	stake     int
	tiePolicy TiePolicy
}

// WithStake sets the stake added to the bank for each hole.
// Default is 1.
func WithStake(stake int) RoundOption {
	return func(c *roundConfig) {
		c.stake = stake
	}
}

// WithTiePolicy sets how tied holes are settled.
// Default is PushCarryOver.
func WithTiePolicy(p TiePolicy) RoundOption {
	return func(c *roundConfig) {
		c.tiePolicy = p
	}
}
