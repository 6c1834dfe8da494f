package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/gameid"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/randutil"
)

// ErrHostStopped is returned when a command arrives after the host loop exits.
var ErrHostStopped = errors.New("game host stopped")

// HostConfig configures the game host
type HostConfig struct {
	Graph  *graph.Graph
	Game   game.Config
	Source randutil.Source
	Tick   time.Duration
	Clock  quartz.Clock
	Logger *log.Logger
	IDs    *gameid.Generator
}

type request struct {
	cmd   Command
	reply chan error
}

// Host plays one series of games, a decision per tick, and publishes every
// new state. Only the loop goroutine touches the game state.
type Host struct {
	engine  *game.Engine
	src     randutil.Source
	tick    time.Duration
	clock   quartz.Clock
	logger  *log.Logger
	ids     *gameid.Generator
	publish func(*Message)

	requests chan request
	done     chan struct{}

	mu     sync.RWMutex
	latest game.Snapshot

	// Loop-owned
	state  game.State
	paused bool
	quiet  bool
}

// NewHost validates the game and prepares the first state
func NewHost(cfg HostConfig) (*Host, error) {
	h := &Host{
		src:      cfg.Source,
		tick:     cfg.Tick,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		ids:      cfg.IDs,
		publish:  func(*Message) {},
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	h.logger = h.logger.WithPrefix("host")
	if h.clock == nil {
		h.clock = quartz.NewReal()
	}
	if h.src == nil {
		h.src = randutil.New(randutil.Seed(0))
	}
	if h.ids == nil {
		h.ids = gameid.NewGenerator(nil)
	}
	if h.tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %s", h.tick)
	}

	engine, err := game.NewEngine(cfg.Graph, cfg.Game,
		game.WithLogger(cfg.Logger),
		game.WithObserver(h.gameOver))
	if err != nil {
		return nil, err
	}
	h.engine = engine
	h.state = engine.Start()
	h.latest = engine.Snapshot(h.state)
	return h, nil
}

// SetPublisher sets where state messages go. Call before Run.
func (h *Host) SetPublisher(publish func(*Message)) {
	h.publish = publish
}

// Snapshot returns the most recently published state
func (h *Host) Snapshot() game.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Submit hands a command to the loop and waits for it to be applied
func (h *Host) Submit(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case MessageTypeSimulate:
		if cmd.Games <= 0 || cmd.Games > MaxSimulateGames {
			return fmt.Errorf("games must be between 1 and %d, got %d", MaxSimulateGames, cmd.Games)
		}
	case MessageTypePause, MessageTypeResume:
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}

	req := request{cmd: cmd, reply: make(chan error, 1)}
	select {
	case h.requests <- req:
	case <-h.done:
		return ErrHostStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks until ctx is done
func (h *Host) Run(ctx context.Context) error {
	ticker := h.clock.NewTicker(h.tick)
	defer ticker.Stop()

	h.logger.Info("Game host started",
		"graph", h.engine.Graph().Name(),
		"tick", h.tick,
		"cops", h.engine.Config().NumberOfCops,
		"steps", h.engine.Config().NumberOfSteps)
	return h.loop(ctx, ticker.C)
}

func (h *Host) loop(ctx context.Context, ticks <-chan time.Time) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Game host stopped", "games", h.state.Score().Games())
			return nil

		case <-ticks:
			if h.paused {
				continue
			}
			h.state = h.engine.Step(h.state, h.src.Float64())
			h.broadcastState()

		case req := <-h.requests:
			req.reply <- h.apply(ctx, req.cmd)
		}
	}
}

func (h *Host) apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case MessageTypePause:
		h.paused = true
		return nil

	case MessageTypeResume:
		h.paused = false
		return nil

	case MessageTypeSimulate:
		h.quiet = true
		next, err := h.engine.Advance(ctx, h.state, cmd.Games, h.src)
		h.quiet = false
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}
		// Start the next game straight away
		h.state = h.engine.Step(next, h.src.Float64())

		score := h.state.Score()
		h.logger.Info("Simulated games", "games", cmd.Games, "copWins", score.CopWins, "robberWins", score.RobberWins)

		snap := h.engine.Snapshot(h.state)
		h.setLatest(snap)
		h.send(MessageTypeSimulated, SimulatedData{Games: cmd.Games, Snapshot: snap})
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd.Type)
}

func (h *Host) broadcastState() {
	snap := h.engine.Snapshot(h.state)
	h.setLatest(snap)
	h.send(MessageTypeState, snap)
}

func (h *Host) setLatest(snap game.Snapshot) {
	h.mu.Lock()
	h.latest = snap
	h.mu.Unlock()
}

// gameOver is the engine observer.
func (h *Host) gameOver(o game.Outcome) {
	if h.quiet {
		return
	}
	cops := make([]int, len(o.Cops))
	for i, c := range o.Cops {
		cops[i] = int(c)
	}
	data := GameOverData{
		GameID:         h.ids.Generate(),
		Game:           o.Game,
		Winner:         o.Winner.String(),
		Rounds:         o.Rounds,
		CopPositions:   cops,
		RobberPosition: int(o.Robber),
	}
	h.logger.Debug("Game over", "gameId", data.GameID, "game", data.Game, "winner", data.Winner)
	h.send(MessageTypeGameOver, data)
}

func (h *Host) send(t MessageType, data any) {
	msg, err := NewMessage(t, data, h.clock.Now())
	if err != nil {
		h.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	h.publish(msg)
}
