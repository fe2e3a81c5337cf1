package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skinsgame/skinsd/internal/game"
	"github.com/skinsgame/skinsd/internal/server"
)

// CalcCmd scores a single round without starting a server.
type CalcCmd struct {
	Holes     int      `kong:"required,help='Number of holes (1-18)'"`
	Player    []string `kong:"required,help='Player as ID=4,5,3 (repeat per player)'"`
	Stake     int      `kong:"default='1',help='Stake per hole'"`
	TiePolicy string   `kong:"name='tie-policy',default='push',enum='push,split',help='Tie policy: push or split'"`
	JSON      bool     `kong:"help='Emit the result as JSON'"`
}

func (c *CalcCmd) Run() error {
	entries, err := parsePlayerSpecs(c.Player)
	if err != nil {
		return err
	}

	policy, err := game.ParseTiePolicy(c.TiePolicy)
	if err != nil {
		return err
	}

	round, err := game.NewRound(c.Holes, entries,
		game.WithStake(c.Stake), game.WithTiePolicy(policy))
	if err != nil {
		return err
	}

	result := game.Resolve(round)
	if err := game.ValidateStakeConservation(round, result); err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(server.NewCalculateResponse(result))
	}

	printResult(os.Stdout, round, result)
	return nil
}

// parsePlayerSpecs parses repeated --player ID=4,5,3 flags.
func parsePlayerSpecs(specs []string) ([]game.PlayerEntry, error) {
	entries := make([]game.PlayerEntry, 0, len(specs))
	for _, spec := range specs {
		id, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid player spec %q: expected ID=score,score,...", spec)
		}
		scores, err := game.ParseScores(list)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", id, err)
		}
		entries = append(entries, game.PlayerEntry{ID: id, Scores: scores})
	}
	return entries, nil
}

func printResult(w io.Writer, round *game.Round, result *game.RoundResult) {
	for _, h := range result.Holes {
		parts := make([]string, 0, len(round.Players))
		for _, p := range round.Players {
			parts = append(parts, fmt.Sprintf("%s %d", p.ID, h.Scores[p.ID]))
		}

		outcome := "push"
		switch len(h.Winners) {
		case 0:
		case 1:
			outcome = fmt.Sprintf("%s wins %d", h.Winners[0], h.BankBefore+round.Stake)
		default:
			outcome = fmt.Sprintf("%s split %d", strings.Join(h.Winners, ", "), h.BankBefore+round.Stake)
		}

		fmt.Fprintf(w, "hole %2d: %s -> %s\n", h.HoleNumber, strings.Join(parts, ", "), outcome)
	}

	fmt.Fprintln(w)
	for _, p := range round.Players {
		fmt.Fprintf(w, "%-12s %d\n", p.ID, result.PlayerSkins[p.ID])
	}
	if result.UnclaimedBank > 0 {
		fmt.Fprintf(w, "unclaimed    %d\n", result.UnclaimedBank)
	}

	if result.Winner == game.WinnerTie {
		fmt.Fprintln(w, "\nresult: tie")
	} else {
		fmt.Fprintf(w, "\nresult: %s wins\n", result.Winner)
	}
}
