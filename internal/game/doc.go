// Package game implements the Cops and Robbers state machine.
//
// An Engine is bound to one board and Config. It does not own any state:
// callers thread State values through Step, feeding one sample in [0,1)
// per call, and get the next State back.
//
// # Basic Usage
//
//	e, err := game.NewEngine(graph.Hexagon, game.DefaultConfig())
//	s := e.Start()
//	for s.Turn() != game.Over {
//	    s = e.Step(s, rng.Float64())
//	}
//
// Step on an Over state starts the next game. The strategies (and any
// MENACE bags they have learned) carry over.
//
// # Bulk Play
//
// Advance plays whole games from a randutil.Source. It stops at the
// finishing state of the requested game and checks the context between
// steps.
//
//	s, err = e.Advance(ctx, s, 1000, randutil.New(seed))
//
// # Deterministic Testing
//
// randutil.NewSequence replays a fixed list of samples, so tests can script
// every draw the strategies make.
package game
