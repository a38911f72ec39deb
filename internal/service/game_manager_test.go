package service

import (
	"sync"
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

func TestGameManager_Create(t *testing.T) {
	tests := []struct {
		name        string
		variant     string
		wantVariant string
		wantErr     error
	}{
		{"default variant", "", "standard", nil},
		{"named variant", "grand", "grand", nil},
		{"unknown variant", "not-a-real-variant", "", errors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gm := NewGameManager(nil)
			id, err := gm.Create(tt.variant)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				testutil.AssertEqual(t, gm.Len(), 0)
				return
			}
			testutil.AssertNoError(t, err)
			state, err := gm.Get(id)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, state.ID, id)
			testutil.AssertEqual(t, state.Variant, tt.wantVariant)
			testutil.AssertEqual(t, state.Status, "ongoing")
			testutil.AssertTrue(t, len(state.Legal) > 0)
		})
	}
}

func TestGameManager_UnknownGame(t *testing.T) {
	gm := NewGameManager(config.NewConfig())

	_, err := gm.Get("missing")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownGame)
	ev, err := gm.Submit("missing", "e2e4", chess.White)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownGame)
	testutil.AssertEqual(t, ev, game.InvalidMove)
	_, err = gm.LegalMoves("missing", chess.White)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownGame)
	_, err = gm.Snapshot("missing")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownGame)
	_, _, err = gm.Subscribe("missing")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownGame)
	testutil.AssertErrorIs(t, gm.Remove("missing"), errors.ErrUnknownGame)
}

func TestGameManager_SubmitPublishes(t *testing.T) {
	gm := NewGameManager(nil)
	id, err := gm.Create("standard")
	testutil.AssertNoError(t, err)

	updates, cancel, err := gm.Subscribe(id)
	testutil.AssertNoError(t, err)
	defer cancel()

	ev, err := gm.Submit(id, "e7e5", chess.Black)
	testutil.AssertErrorIs(t, err, errors.ErrNotYourTurn)
	testutil.AssertEqual(t, ev, game.InvalidMove)

	ev, err = gm.Submit(id, "e2e4", chess.White)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ev, game.MoveSucceeded)

	u := <-updates
	testutil.AssertEqual(t, u, Update{
		GameID: id, Move: "e2e4", Side: "white", Event: game.MoveSucceeded,
		Status: "ongoing", Turn: "black", Ply: 1,
	})
	select {
	case extra := <-updates:
		t.Errorf("rejected move published: %+v", extra)
	default:
	}

	snap, err := gm.Snapshot(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, snap[4][4], "P")

	legal, err := gm.LegalMoves(id, chess.Black)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, legal["g8"], []string{"f6", "h6"})
}

func TestGameManager_CancelAndRemove(t *testing.T) {
	gm := NewGameManager(nil)
	id, err := gm.Create("standard")
	testutil.AssertNoError(t, err)

	first, cancel, err := gm.Subscribe(id)
	testutil.AssertNoError(t, err)
	cancel()
	cancel()
	_, open := <-first
	testutil.AssertFalse(t, open, "cancelled subscription is closed")

	second, _, err := gm.Subscribe(id)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, gm.Remove(id))
	_, open = <-second
	testutil.AssertFalse(t, open, "removed game closes subscriptions")
	testutil.AssertEqual(t, gm.Len(), 0)
}

func TestGameManager_SlowSubscriberDoesNotBlock(t *testing.T) {
	gm := NewGameManager(nil)
	id, err := gm.Create("marseillais")
	testutil.AssertNoError(t, err)
	_, cancel, err := gm.Subscribe(id)
	testutil.AssertNoError(t, err)
	defer cancel()

	moves := []string{"a2a3", "a3a4", "a7a6", "a6a5", "b2b3", "b3b4", "b7b6", "b6b5",
		"c2c3", "c3c4", "c7c6", "c6c5", "d2d3", "d3d4", "d7d6", "d6d5",
		"e2e3", "e3e4", "e7e6", "e6e5"}
	for _, mv := range moves {
		side := chess.White
		if mv[1] == '7' || mv[1] == '6' {
			side = chess.Black
		}
		_, err := gm.Submit(id, mv, side)
		testutil.AssertNoError(t, err, mv)
	}
}

// TestGameManager_Concurrent is designed to be run with -race flag.
func TestGameManager_Concurrent(t *testing.T) {
	gm := NewGameManager(nil)
	ids := make([]string, 4)
	for i := range ids {
		id, err := gm.Create("standard")
		testutil.AssertNoError(t, err)
		ids[i] = id
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				gm.Submit(id, "e2e4", chess.White)
				gm.Get(id)
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		state, err := gm.Get(id)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, state.Ply, 1, "exactly one e2e4 accepted")
	}
}
