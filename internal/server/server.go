// Package server exposes hosted games over HTTP and WebSocket.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/service"
	"github.com/lgbarn/chess-variants-go/internal/variant"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "server")
}

// CreateRequest is the body of POST /api/games.
type CreateRequest struct {
	Variant string `json:"variant"`
}

// MoveRequest is the body of POST /api/games/:id/moves and the payload of
// websocket "move" messages.
type MoveRequest struct {
	Move string `json:"move"`
	Side string `json:"side"`
}

// MoveResponse reports the outcome of a move.
type MoveResponse struct {
	Event game.Event `json:"event"`
	Error string     `json:"error,omitempty"`
}

// Server binds a GameManager to fiber routes.
type Server struct {
	cfg *config.Config
	mgr *service.GameManager
}

// New builds the fiber app. A nil cfg uses the defaults.
func New(cfg *config.Config, mgr *service.GameManager) *fiber.App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.Server == nil {
		cfg.Server = config.NewServerConfig()
	}
	s := &Server{cfg: cfg, mgr: mgr}

	app := fiber.New(fiber.Config{
		AppName:               "variant-server",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	app.Use(requestLogger())

	api := app.Group("/api")
	api.Get("/variants", s.listVariants)

	games := api.Group("/games")
	games.Post("/", s.createGame)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Get("/:id/moves", s.legalMoves)
	games.Post("/:id/moves", s.submitMove)

	app.Use("/ws", upgradeRequired())
	app.Get("/ws/games/:id", websocket.New(s.streamGame, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	return app
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger().Debug("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"elapsed", time.Since(start))
		return err
	}
}

func upgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// errorHandler maps domain errors to status codes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, errors.ErrUnknownGame):
		code = fiber.StatusNotFound
	case errors.Is(err, errors.ErrInvalidConfig):
		code = fiber.StatusBadRequest
	}
	if code >= fiber.StatusInternalServerError {
		logger().Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) listVariants(c *fiber.Ctx) error {
	return c.JSON(variant.Describe())
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	id, err := s.mgr.Create(req.Variant)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) getGame(c *fiber.Ctx) error {
	state, err := s.mgr.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.mgr.Remove(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) legalMoves(c *fiber.Ctx) error {
	side, ok := chess.ParseSide(c.Query("side", "white"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "side must be white or black")
	}
	moves, err := s.mgr.LegalMoves(c.Params("id"), side)
	if err != nil {
		return err
	}
	return c.JSON(moves)
}

func (s *Server) submitMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	resp, err := s.play(c.Params("id"), req)
	if err != nil {
		return err
	}
	if resp.Event == game.InvalidMove {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	return c.JSON(resp)
}

// play submits req. Only an unknown game is returned as an error; move
// rejections are part of the response.
func (s *Server) play(id string, req MoveRequest) (MoveResponse, error) {
	side, ok := chess.ParseSide(req.Side)
	if !ok {
		return MoveResponse{Event: game.InvalidMove, Error: "unknown side " + req.Side}, nil
	}
	ev, err := s.mgr.Submit(id, req.Move, side)
	if errors.Is(err, errors.ErrUnknownGame) {
		return MoveResponse{}, err
	}
	resp := MoveResponse{Event: ev}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp, nil
}
