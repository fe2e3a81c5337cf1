// Package game implements the core scoring logic for a golf skins game.
//
// The main entry points are NewRound, which validates raw input into an
// immutable Round, and Resolve, which plays the round hole by hole and
// produces a RoundResult.
//
// # Basic Usage
//
// Build a round and score it:
//
//	r, err := game.NewRound(3, []game.PlayerEntry{
//	    {ID: "alice", Scores: []int{4, 5, 3}},
//	    {ID: "bob", Scores: []int{5, 5, 3}},
//	})
//	if err != nil {
//	    // input was rejected; err is a *ValidationError
//	}
//	result := game.Resolve(r)
//
// # Stakes and Tie Policy
//
// The stake per hole and the tie policy are per-round options, never
// process-wide state, so concurrent rounds with different configurations
// cannot interfere:
//
//	r, err := game.NewRound(18, entries,
//	    game.WithStake(5),
//	    game.WithTiePolicy(game.SplitSkin))
//
// # Architecture
//
// Scoring is a strictly forward pipeline:
//   - NewRound: validates and canonicalizes raw input (the normalizer)
//   - Resolve: folds over holes in order, threading the bank accumulator
//   - aggregate: folds per-hole outcomes into totals and the winner
//
// The engine is a pure function of its input. It performs no I/O, holds
// no state across calls, and resolution over a validated Round cannot
// fail; ValidateStakeConservation exists so callers and tests can assert
// the engine's own invariants held.
package game
