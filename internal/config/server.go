package config

import (
	"fmt"

	"github.com/lgbarn/chessmatch-go/internal/errors"
)

// ServerConfig holds settings for the match server.
type ServerConfig struct {
	// Addr is the TCP address to listen on.
	Addr string

	// MaxRooms bounds the number of live rooms.
	MaxRooms int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:     ":8080",
		MaxRooms: 64,
	}
}

// Validate checks the listen address and room limit.
func (s *ServerConfig) Validate() error {
	if s == nil {
		return fmt.Errorf("missing server section: %w", errors.ErrInvalidConfig)
	}
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.MaxRooms < 1 {
		return fmt.Errorf("max rooms (%d) must be at least 1: %w", s.MaxRooms, errors.ErrInvalidConfig)
	}
	return nil
}
