package config

// ServerConfig holds settings for the HTTP front-end.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":3000"
	Addr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         DefaultAddr,
		AllowOrigins: "*",
	}
}
