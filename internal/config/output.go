package config

// OutputConfig holds settings related to CLI output.
type OutputConfig struct {
	// JSONFormat enables JSON documents instead of text boards
	JSONFormat bool

	// Indent is the JSON indentation; empty means compact output
	Indent string

	// ShowLegal lists each side's legal moves after the board
	ShowLegal bool

	// Coordinates prints rank and file labels around text boards
	Coordinates bool

	// Batch collects JSON states into one {"games": [...]} document
	Batch bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Indent:      "  ",
		Coordinates: true,
	}
}
