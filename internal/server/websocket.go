package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// MessageType names a websocket message.
type MessageType string

const (
	MessageTypeMove   MessageType = "move"
	MessageTypeUpdate MessageType = "update"
	MessageTypeResult MessageType = "result"
	MessageTypeError  MessageType = "error"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// streamGame forwards game updates to the connection and accepts move
// messages from it until either side closes.
func (s *Server) streamGame(c *websocket.Conn) {
	id := c.Params("id")
	log := logger().With("game", id)

	// Replies and updates are written from two goroutines.
	var wmu sync.Mutex
	send := func(typ MessageType, payload any) error {
		wmu.Lock()
		defer wmu.Unlock()
		return writeMessage(c, typ, payload)
	}

	updates, cancel, err := s.mgr.Subscribe(id)
	if err != nil {
		send(MessageTypeError, map[string]string{"error": err.Error()})
		c.Close()
		return
	}
	defer cancel()
	log.Info("websocket connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			mt, data, err := c.ReadMessage()
			if err != nil {
				log.Debug("websocket read ended", "error", err)
				return
			}
			if mt != websocket.TextMessage {
				continue
			}
			typ, payload := s.handleMessage(id, data)
			if err := send(typ, payload); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				c.Close()
				return
			}
			if err := send(MessageTypeUpdate, u); err != nil {
				log.Debug("websocket write failed", "error", err)
				return
			}
		case <-done:
			log.Info("websocket disconnected")
			return
		}
	}
}

// handleMessage decodes one client message and returns the reply.
func (s *Server) handleMessage(id string, data []byte) (MessageType, any) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return MessageTypeError, map[string]string{"error": "malformed message: " + err.Error()}
	}
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return MessageTypeError, map[string]string{"error": "malformed move: " + err.Error()}
		}
		resp, err := s.play(id, req)
		if err != nil {
			return MessageTypeError, map[string]string{"error": err.Error()}
		}
		return MessageTypeResult, resp
	default:
		return MessageTypeError, map[string]string{"error": fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}

func writeMessage(c *websocket.Conn, typ MessageType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.WriteJSON(Message{Type: typ, Payload: raw})
}
