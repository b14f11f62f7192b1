package config

import "time"

// Config holds settings for both the service and the terminal client.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	Rooms             []string      `mapstructure:"rooms" yaml:"rooms"`
	DefaultRoom       string        `mapstructure:"default_room" yaml:"default_room"`
	JWTSecret         string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer         string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults. The
// room list matches the service's fixed namespace. AllowedOrigins is
// empty, which disables WebSocket origin checking for local use;
// deployments set it to the host patterns browsers may connect from.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DatabasePath:      "roomchat.db",
		LogLevel:          "info",
		Rooms:             []string{"General", "Video Games", "Movies", "Nerd Shit"},
		DefaultRoom:       "General",
		JWTSecret:         "dev-secret-change-me",
		JWTIssuer:         "roomchat",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// HasRoom reports whether name is part of the configured room list.
func (c *Config) HasRoom(name string) bool {
	for _, r := range c.Rooms {
		if r == name {
			return true
		}
	}
	return false
}
