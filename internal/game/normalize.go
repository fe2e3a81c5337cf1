package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError describes the first constraint a raw round request
// violated. Field names the offending request field; PlayerID is set when
// the constraint is specific to one player so callers can render a
// precise message.
type ValidationError struct {
	Field    string
	PlayerID string
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PlayerEntry is one player's raw input to NewRound.
type PlayerEntry struct {
	ID     string
	Scores []int
}

// NewRound validates raw input and builds an immutable Round. It returns
// a *ValidationError describing the first violated constraint: holes must
// be within [MinHoles, MaxHoles], player count within [MinPlayers,
// MaxPlayers], ids non-empty and unique, every score list exactly
// holesCount long, and every score non-negative. Score slices are copied,
// so callers may reuse their input.
func NewRound(holesCount int, entries []PlayerEntry, opts ...RoundOption) (*Round, error) {
	if holesCount < MinHoles || holesCount > MaxHoles {
		return nil, &ValidationError{
			Field:   "holesCount",
			Message: fmt.Sprintf("holesCount must be between %d and %d, got %d", MinHoles, MaxHoles, holesCount),
		}
	}
	if len(entries) < MinPlayers || len(entries) > MaxPlayers {
		return nil, &ValidationError{
			Field:   "players",
			Message: fmt.Sprintf("a round needs %d to %d players, got %d", MinPlayers, MaxPlayers, len(entries)),
		}
	}

	cfg := &roundConfig{
		stake:     DefaultStake,
		tiePolicy: PushCarryOver,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.stake < 1 {
		return nil, &ValidationError{
			Field:   "stake",
			Message: fmt.Sprintf("stake must be at least 1, got %d", cfg.stake),
		}
	}

	seen := make(map[string]bool, len(entries))
	players := make([]*Player, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, &ValidationError{
				Field:   "players.id",
				Message: "player id must not be empty",
			}
		}
		if seen[e.ID] {
			return nil, &ValidationError{
				Field:    "players.id",
				PlayerID: e.ID,
				Message:  fmt.Sprintf("duplicate player id %q", e.ID),
			}
		}
		seen[e.ID] = true

		if len(e.Scores) != holesCount {
			return nil, &ValidationError{
				Field:    "players.scores",
				PlayerID: e.ID,
				Message:  fmt.Sprintf("player %q has %d scores, expected %d", e.ID, len(e.Scores), holesCount),
			}
		}
		for i, s := range e.Scores {
			if s < 0 {
				return nil, &ValidationError{
					Field:    "players.scores",
					PlayerID: e.ID,
					Message:  fmt.Sprintf("player %q has a negative score %d on hole %d", e.ID, s, i+1),
				}
			}
		}

		scores := make([]int, holesCount)
		copy(scores, e.Scores)
		players = append(players, &Player{ID: e.ID, Scores: scores})
	}

	return &Round{
		HolesCount: holesCount,
		Players:    players,
		Stake:      cfg.stake,
		TiePolicy:  cfg.tiePolicy,
	}, nil
}

// ParseScores parses a comma-delimited score list such as "4,5,3" into
// stroke counts. Tokens are trimmed; each must be a non-negative integer.
func ParseScores(s string) ([]int, error) {
	tokens := strings.Split(s, ",")
	scores := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid score %q: scores must be non-negative integers", tok)
		}
		scores = append(scores, n)
	}
	return scores, nil
}
