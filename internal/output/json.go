package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/game"
)

// JSONState represents a game state in JSON format.
type JSONState struct {
	ID        string              `json:"id,omitempty"`
	Variant   string              `json:"variant"`
	Status    string              `json:"status"`
	Turn      string              `json:"turn"`
	MovesLeft int                 `json:"movesLeft"`
	Ply       int                 `json:"ply"`
	Board     [][]string          `json:"board"`
	Legal     map[string][]string `json:"legal,omitempty"`
}

// JSONOutput holds multiple states for array output.
type JSONOutput struct {
	Games []*JSONState `json:"games"`
}

// JSONCount is one variant's legal move count.
type JSONCount struct {
	Variant string `json:"variant"`
	Moves   int    `json:"moves"`
	Error   string `json:"error,omitempty"`
}

// StateToJSON converts a game to its JSON document. Legal moves of the side
// to move are included when cfg asks for them.
func StateToJSON(g *game.Game, cfg *config.Config) *JSONState {
	js := &JSONState{
		Variant:   g.Variant(),
		Status:    g.Status().String(),
		Turn:      g.Turn().String(),
		MovesLeft: g.MovesLeft(),
		Ply:       g.Ply(),
		Board:     g.BoardSnapshot(),
	}
	if outputOptions(cfg).ShowLegal {
		js.Legal = g.LegalMoves(g.Turn())
	}
	return js
}

// OutputCountsJSON outputs batch move counts as a JSON array.
func OutputCountsJSON(counts []JSONCount, w io.Writer, cfg *config.Config) error {
	return encode(w, counts, outputOptions(cfg).Indent)
}

func encode(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}
