// Package service hosts games in memory for the server. Each game is
// guarded by its own mutex; the manager lock only protects the index.
package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/output"
	"github.com/lgbarn/chess-variants-go/internal/variant"
)

// updateBuffer is the per-subscriber queue length. Updates to a full
// subscriber are dropped.
const updateBuffer = 16

// Update is published to subscribers after every accepted move.
type Update struct {
	GameID string     `json:"gameId"`
	Move   string     `json:"move"`
	Side   string     `json:"side"`
	Event  game.Event `json:"event"`
	Status string     `json:"status"`
	Turn   string     `json:"turn"`
	Ply    int        `json:"ply"`
}

type hosted struct {
	mu      sync.Mutex
	game    *game.Game
	subs    map[int]chan Update
	nextSub int
}

// GameManager owns every hosted game.
type GameManager struct {
	cfg   *config.Config
	mu    sync.RWMutex
	games map[string]*hosted
}

func logger() *slog.Logger {
	return slog.Default().With("component", "service")
}

// NewGameManager creates an empty manager. A nil cfg uses the defaults.
func NewGameManager(cfg *config.Config) *GameManager {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &GameManager{
		cfg:   cfg,
		games: make(map[string]*hosted),
	}
}

// Create starts a game of the named variant and returns its id. An empty
// name selects the configured default.
func (gm *GameManager) Create(name string) (string, error) {
	if name == "" {
		name = gm.cfg.Variant
	}
	setup, err := variant.New(name, gm.cfg)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	gm.mu.Lock()
	gm.games[id] = &hosted{game: game.New(setup), subs: make(map[int]chan Update)}
	gm.mu.Unlock()

	logger().Info("game created", "id", id, "variant", name)
	return id, nil
}

func (gm *GameManager) lookup(id string) (*hosted, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	h, ok := gm.games[id]
	if !ok {
		return nil, fmt.Errorf("game %q: %w", id, errors.ErrUnknownGame)
	}
	return h, nil
}

// Remove stops hosting a game and closes its subscriptions.
func (gm *GameManager) Remove(id string) error {
	gm.mu.Lock()
	h, ok := gm.games[id]
	delete(gm.games, id)
	gm.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %q: %w", id, errors.ErrUnknownGame)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for key, ch := range h.subs {
		close(ch)
		delete(h.subs, key)
	}
	return nil
}

// Len returns the number of hosted games.
func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Get returns the state document of a game, including the legal moves of
// the side to move.
func (gm *GameManager) Get(id string) (*output.JSONState, error) {
	h, err := gm.lookup(id)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	state := output.StateToJSON(h.game, nil)
	state.ID = id
	state.Legal = h.game.LegalMoves(h.game.Turn())
	return state, nil
}

// Submit plays move for side. A rejected move returns InvalidMove with the
// reason; accepted moves are published to subscribers.
func (gm *GameManager) Submit(id, move string, side chess.Side) (game.Event, error) {
	h, err := gm.lookup(id)
	if err != nil {
		return game.InvalidMove, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ev, err := h.game.Submit(move, side)
	if err != nil {
		return ev, err
	}

	u := Update{
		GameID: id,
		Move:   move,
		Side:   side.String(),
		Event:  ev,
		Status: h.game.Status().String(),
		Turn:   h.game.Turn().String(),
		Ply:    h.game.Ply(),
	}
	for key, ch := range h.subs {
		select {
		case ch <- u:
		default:
			logger().Warn("subscriber lagging, update dropped", "id", id, "subscriber", key, "ply", u.Ply)
		}
	}
	return ev, nil
}

// LegalMoves returns side's legal moves in a game.
func (gm *GameManager) LegalMoves(id string, side chess.Side) (map[string][]string, error) {
	h, err := gm.lookup(id)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game.LegalMoves(side), nil
}

// Snapshot returns the board of a game, top rank first.
func (gm *GameManager) Snapshot(id string) ([][]string, error) {
	h, err := gm.lookup(id)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game.BoardSnapshot(), nil
}

// Subscribe returns a channel of updates for a game and a function that
// cancels the subscription. The channel is closed on cancel or when the
// game is removed.
func (gm *GameManager) Subscribe(id string) (<-chan Update, func(), error) {
	h, err := gm.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	h.mu.Lock()
	key := h.nextSub
	h.nextSub++
	ch := make(chan Update, updateBuffer)
	h.subs[key] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[key]; ok {
				close(c)
				delete(h.subs, key)
			}
		})
	}
	return ch, cancel, nil
}
