package server

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/service"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

// serve runs app on a loopback listener and returns its address.
func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err)
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })
	return ln.Addr().String()
}

func dial(t *testing.T, addr, id string) *fws.Conn {
	t.Helper()
	conn, _, err := fws.DefaultDialer.Dial("ws://"+addr+"/ws/games/"+id, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestStreamGame_MoveAndUpdate(t *testing.T) {
	app, mgr := newTestApp(t)
	id, err := mgr.Create("standard")
	testutil.AssertNoError(t, err)
	conn := dial(t, serve(t, app), id)

	testutil.AssertNoError(t, conn.WriteJSON(map[string]any{
		"type":    MessageTypeMove,
		"payload": MoveRequest{Move: "e2e4", Side: "white"},
	}))

	// The reply and the pushed update may arrive in either order.
	var update service.Update
	var result MoveResponse
	seen := make(map[MessageType]bool)
	for len(seen) < 2 {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v (seen %v)", err, seen)
		}
		seen[msg.Type] = true
		switch msg.Type {
		case MessageTypeUpdate:
			testutil.AssertNoError(t, json.Unmarshal(msg.Payload, &update))
		case MessageTypeResult:
			testutil.AssertNoError(t, json.Unmarshal(msg.Payload, &result))
		default:
			t.Fatalf("unexpected message %s: %s", msg.Type, msg.Payload)
		}
	}

	testutil.AssertEqual(t, result, MoveResponse{Event: game.MoveSucceeded})
	testutil.AssertEqual(t, update, service.Update{
		GameID: id,
		Move:   "e2e4",
		Side:   "white",
		Event:  game.MoveSucceeded,
		Status: "ongoing",
		Turn:   "black",
		Ply:    1,
	})
}

func TestStreamGame_ClosesOnRemove(t *testing.T) {
	app, mgr := newTestApp(t)
	id, err := mgr.Create("standard")
	testutil.AssertNoError(t, err)
	conn := dial(t, serve(t, app), id)

	// A round trip guarantees the subscription exists before the removal.
	testutil.AssertNoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	var msg Message
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertEqual(t, msg.Type, MessageTypeError)

	testutil.AssertNoError(t, mgr.Remove(id))
	_, _, err = conn.ReadMessage()
	testutil.AssertTrue(t, err != nil, "connection closed after the game is removed")
}

func TestStreamGame_UnknownGame(t *testing.T) {
	app, _ := newTestApp(t)
	conn := dial(t, serve(t, app), "missing")

	var msg Message
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertEqual(t, msg.Type, MessageTypeError)
	_, _, err := conn.ReadMessage()
	testutil.AssertTrue(t, err != nil, "connection closed")
}
